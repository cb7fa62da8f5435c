package store

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/julesjewels-ai/chronolog-memory-augmentation/internal/model"
)

// maxAnswerEntries is how many of the most recent matches feed an answer.
const maxAnswerEntries = 3

// Tokenize lowercases a question and splits it on whitespace.
func Tokenize(question string) []string {
	return strings.Fields(strings.ToLower(question))
}

// Query answers a question by keyword matching against stored content.
// An entry matches when its lowercased content contains any token as a
// substring. Matches are ranked by recency only.
func (s *SQLiteStore) Query(ctx context.Context, question string) (string, error) {
	tokens := Tokenize(question)
	if len(tokens) == 0 {
		return NoContextResponse, nil
	}

	matches, err := s.Match(ctx, tokens, maxAnswerEntries)
	if err != nil {
		return "", err
	}

	s.log.Debug("query matched",
		zap.Strings("tokens", tokens),
		zap.Int("matches", len(matches)))

	return Answer(matches), nil
}

// Match returns up to limit entries whose content contains any token,
// newest first. A non-positive limit returns every match.
func (s *SQLiteStore) Match(ctx context.Context, tokens []string, limit int) ([]model.MemoryEntry, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	where := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens)+1)
	for _, t := range tokens {
		// instr keeps LIKE wildcards in the question literal.
		where = append(where, "instr(fold(content), ?) > 0")
		args = append(args, strings.ToLower(t))
	}

	query := fmt.Sprintf(`
		SELECT id, timestamp, source, content, metadata
		FROM memories
		WHERE %s
		ORDER BY timestamp DESC, id DESC`, strings.Join(where, " OR "))
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	entries, err := s.queryEntries(ctx, query, args...)
	if err != nil {
		return nil, storageErr("query", err)
	}
	return entries, nil
}

// Answer renders the response for a set of matches ordered newest first.
func Answer(matches []model.MemoryEntry) string {
	if len(matches) == 0 {
		return NoContextResponse
	}
	if len(matches) > maxAnswerEntries {
		matches = matches[:maxAnswerEntries]
	}
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = m.Content
	}
	return fmt.Sprintf(answerTemplate, strings.Join(parts, " | "))
}
