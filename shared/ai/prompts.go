package ai

import (
	"fmt"
	"strings"

	"playlist-insights/internal/models"
	"playlist-insights/shared/apperrors"
)

// DefaultPlaylistTitle stands in when the playlist lookup found nothing.
const DefaultPlaylistTitle = "this playlist"

// ParseInsightKind maps a user-supplied name to an InsightKind.
func ParseInsightKind(name string) (models.InsightKind, error) {
	switch kind := models.InsightKind(strings.ToLower(strings.TrimSpace(name))); kind {
	case models.InsightSummary, models.InsightLearningPath, models.InsightFAQ:
		return kind, nil
	case "learning_path", "learningpath", "path":
		return models.InsightLearningPath, nil
	case "faqs":
		return models.InsightFAQ, nil
	default:
		return "", apperrors.NewValidationError(
			fmt.Sprintf("Unknown insight %q. Choose summary, learning-path or faq.", name), "insight", name)
	}
}

// BuildPrompt renders the prompt for kind from the playlist title and the
// titles of its videos, in playlist order.
func BuildPrompt(kind models.InsightKind, playlistTitle string, videos []*models.VideoRecord) (string, error) {
	if playlistTitle == "" {
		playlistTitle = DefaultPlaylistTitle
	}
	titles := videoTitleList(videos)

	switch kind {
	case models.InsightSummary:
		return fmt.Sprintf(`You are a helpful YouTube expert. Generate a concise summary of a playlist based on its title and video titles.

Playlist Title: "%s"

Video Titles:
%s

Please provide:
1. A one-paragraph summary.
2. The likely target audience.
3. A bulleted list of 3-5 key topics.

Format your response clearly using Markdown.`, playlistTitle, titles), nil

	case models.InsightLearningPath:
		return fmt.Sprintf(`You are an expert curriculum designer. Analyze the following list of video titles from a YouTube playlist and organize them into a logical learning path.

Playlist Title: "%s"

Video Titles:
%s

Please:
1. Group videos into logical sections with clear headings (use ### for headings).
2. List relevant video titles in a sensible order within each section.
3. Provide a brief (1-2 sentence) explanation for your structure.

Format your response clearly using Markdown.`, playlistTitle, titles), nil

	case models.InsightFAQ:
		return fmt.Sprintf(`You are a helpful content analyst. Based on the title and video titles of the following YouTube playlist, generate a list of 3-5 frequently asked questions (FAQs) that a potential viewer might have. For each question, provide a concise, one-sentence answer that could be inferred from the titles.

Playlist Title: "%s"

Video Titles:
%s

Format the output as a list where each item starts with "**Q:**" followed by the question, and the next line starts with "A:" followed by the answer.`, playlistTitle, titles), nil
	}

	return "", apperrors.NewValidationError(fmt.Sprintf("Unknown insight %q.", kind), "insight", string(kind))
}

func videoTitleList(videos []*models.VideoRecord) string {
	lines := make([]string, 0, len(videos))
	for _, v := range videos {
		if v == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf(`- "%s"`, v.Title))
	}
	return strings.Join(lines, "\n")
}
