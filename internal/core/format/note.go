package format

import (
	"strings"

	"github.com/Axioz99/claude-obsidian-sync/internal/core/models"
)

// Tag conventions consumed by Obsidian's tag index. The hierarchical
// "root/category/value" shape is part of the contract.
const (
	tagRoot        = "ClaudeCode"
	tagObservation = tagRoot + "/observation"
	tagSummary     = tagRoot + "/summary"
)

// ObservationNote renders an observation and its metadata into a complete
// Markdown document: YAML front matter, an emoji H1, and optional sections
// for facts, narrative, concept tags, and related files. Pure and
// bit-deterministic for identical inputs.
func ObservationNote(obs models.Observation, meta models.NoteMetadata) string {
	tags := []string{
		tagObservation,
		tagRoot + "/type/" + string(obs.Type),
		tagRoot + "/project/" + SanitizeFileName(meta.Project),
	}
	for _, concept := range obs.Concepts {
		tags = append(tags, tagRoot+"/concept/"+concept)
	}

	frontmatter := Frontmatter([]Field{
		{Key: "id", Value: meta.ID},
		{Key: "type", Value: string(obs.Type)},
		{Key: "project", Value: meta.Project},
		{Key: "session_id", Value: meta.SessionID},
		{Key: "prompt_number", Value: meta.PromptNumber},
		{Key: "created_at", Value: FormatIsoDate(meta.CreatedAt)},
		{Key: "tags", Value: tags},
		{Key: "files_read", Value: obs.FilesRead},
		{Key: "files_modified", Value: obs.FilesModified},
	})

	title := obs.Title
	if title == "" {
		title = "无标题观察"
	}

	var sections []string
	sections = append(sections, "# "+Emoji(obs.Type)+" "+title, "")

	if obs.Subtitle != "" {
		sections = append(sections, "> "+obs.Subtitle, "")
	}

	sections = append(sections,
		"**类型**: "+string(obs.Type)+" | **时间**: "+FormatReadableDate(meta.CreatedAt)+" | **项目**: "+meta.Project,
		"")

	if len(obs.Facts) > 0 {
		sections = append(sections, "## 事实")
		for _, fact := range obs.Facts {
			sections = append(sections, "- "+fact)
		}
		sections = append(sections, "")
	}

	if obs.Narrative != "" {
		sections = append(sections, "## 叙述", obs.Narrative, "")
	}

	if len(obs.Concepts) > 0 {
		inline := make([]string, len(obs.Concepts))
		for i, concept := range obs.Concepts {
			inline[i] = "#" + tagRoot + "/concept/" + concept
		}
		sections = append(sections, "## 概念标签", strings.Join(inline, " "), "")
	}

	if len(obs.FilesRead) > 0 || len(obs.FilesModified) > 0 {
		sections = append(sections, "## 相关文件")
		if len(obs.FilesRead) > 0 {
			sections = append(sections, "### 读取")
			for _, file := range obs.FilesRead {
				sections = append(sections, "- `"+file+"`")
			}
		}
		if len(obs.FilesModified) > 0 {
			sections = append(sections, "### 修改")
			for _, file := range obs.FilesModified {
				sections = append(sections, "- `"+file+"`")
			}
		}
		sections = append(sections, "")
	}

	return frontmatter + "\n\n" + strings.Join(sections, "\n")
}

// SummaryNote renders a session summary into a Markdown document. Each of the
// five report sections appears only when its source field is non-empty; the
// result is always a valid note even with zero sections.
func SummaryNote(sum models.Summary, meta models.NoteMetadata) string {
	tags := []string{
		tagSummary,
		tagRoot + "/project/" + SanitizeFileName(meta.Project),
	}

	frontmatter := Frontmatter([]Field{
		{Key: "id", Value: meta.ID},
		{Key: "project", Value: meta.Project},
		{Key: "session_id", Value: meta.SessionID},
		{Key: "prompt_number", Value: meta.PromptNumber},
		{Key: "created_at", Value: FormatIsoDate(meta.CreatedAt)},
		{Key: "tags", Value: tags},
	})

	request := sum.Request
	if request == "" {
		request = "无标题摘要"
	}

	var sections []string
	sections = append(sections, "# 📋 "+request, "")
	sections = append(sections,
		"**时间**: "+FormatReadableDate(meta.CreatedAt)+" | **项目**: "+meta.Project,
		"")

	for _, part := range []struct {
		heading string
		body    string
	}{
		{"## 调查内容", sum.Investigated},
		{"## 学到的知识", sum.Learned},
		{"## 完成的工作", sum.Completed},
		{"## 下一步计划", sum.NextSteps},
		{"## 备注", sum.Notes},
	} {
		if part.body != "" {
			sections = append(sections, part.heading, part.body, "")
		}
	}

	return frontmatter + "\n\n" + strings.Join(sections, "\n")
}
