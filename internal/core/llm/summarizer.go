package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/cbroglie/mustache"

	"github.com/Axioz99/claude-obsidian-sync/internal/core/state"
)

// DefaultSummaryPrompt asks for the four report sections the summary note
// renders. Triple braces keep mustache from HTML-escaping paths and titles.
const DefaultSummaryPrompt = `请为以下 Claude Code 会话生成一个简洁的中文摘要：

会话信息：
- 项目路径: {{{project_path}}}
- 观察记录数: {{observation_count}}
- 读取文件数: {{files_read_count}}
- 修改文件数: {{files_modified_count}}

观察记录：
{{{observations}}}

请生成一个包含以下内容的摘要（每项2-3句话）：
1. 调查内容：主要查看和分析了什么
2. 学到的知识：发现了什么重要信息或模式
3. 完成的工作：具体做了哪些修改或操作
4. 下一步计划：建议接下来做什么

请直接返回摘要内容，不要包含标题或其他格式。`

// DefaultTimeout bounds the generation call so a slow or unreachable API
// can never block session close.
const DefaultTimeout = 30 * time.Second

// Summarizer builds a session summary prompt and runs it through a Provider.
type Summarizer struct {
	provider Provider
	template string
	timeout  time.Duration
}

// NewSummarizer creates a summarizer with the default prompt template and
// timeout.
func NewSummarizer(provider Provider) *Summarizer {
	return &Summarizer{
		provider: provider,
		template: DefaultSummaryPrompt,
		timeout:  DefaultTimeout,
	}
}

// Summarize generates free-text summary prose for an accumulated session.
// Best-effort: any provider failure is returned for the caller to log and
// absorb.
func (s *Summarizer) Summarize(ctx context.Context, st *state.SessionState) (string, error) {
	observations := ""
	for _, obs := range st.Observations {
		observations += fmt.Sprintf("- %s: %s\n", obs.Type, obs.Title)
	}

	data := map[string]interface{}{
		"project_path":         st.ProjectPath,
		"observation_count":    len(st.Observations),
		"files_read_count":     len(st.FilesRead),
		"files_modified_count": len(st.FilesModified),
		"observations":         observations,
	}

	prompt, err := mustache.Render(s.template, data)
	if err != nil {
		// Fall back to a bare prompt if the template fails
		prompt = fmt.Sprintf("请为项目 %s 的 Claude Code 会话生成一个简洁的中文摘要。\n\n观察记录：\n%s", st.ProjectPath, observations)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.provider.GenerateText(ctx, prompt)
}
