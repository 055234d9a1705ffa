package labels

import "strings"

// minTintScore is the lowest similarity at which a token is accepted as a
// tint suffix.
const minTintScore = 2

// TypeParts is the decomposed cut specification line.
type TypeParts struct {
	Thickness string
	GlassType string
	Tint      string
}

// TokenScore records the best dictionary entry for one token of the type
// line.
type TokenScore struct {
	Token string `json:"token" yaml:"token"`
	Entry string `json:"entry" yaml:"entry"`
	Score int    `json:"score" yaml:"score"`
}

// NormalizeTypeLine repairs thickness prefixes, collapses whitespace and
// joins letter-split vocabulary tokens.
func (v *Vocabulary) NormalizeTypeLine(line string) string {
	line = RepairPrefixes(line)
	line = strings.Join(strings.Fields(line), " ")
	line = v.repairLetterSplits(line)
	return strings.Join(strings.Fields(line), " ")
}

// DecomposeType splits a type line into thickness, glass type body and tint.
func (v *Vocabulary) DecomposeType(line string) TypeParts {
	parts, _ := v.decomposeType(line)
	return parts
}

func (v *Vocabulary) decomposeType(line string) (TypeParts, []TokenScore) {
	tokens := strings.Fields(v.NormalizeTypeLine(line))
	if len(tokens) == 0 {
		return TypeParts{}, nil
	}

	parts := TypeParts{Thickness: tokens[0]}
	if len(tokens) == 1 {
		return parts, nil
	}

	scores := make([]TokenScore, len(tokens))
	bestToken, bestEntry, bestScore := -1, "", 0
	for i, tok := range tokens {
		scores[i].Token = tok
		for _, entry := range v.suffixes {
			s := Similarity(tok, entry)
			if s > scores[i].Score {
				scores[i].Entry, scores[i].Score = entry, s
			}
			if s > bestScore {
				bestToken, bestEntry, bestScore = i, entry, s
			}
		}
	}

	if bestScore < minTintScore {
		return parts, scores
	}

	parts.Tint = bestEntry
	body := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		if i == 0 || i == bestToken {
			continue
		}
		body = append(body, tok)
	}
	parts.GlassType = strings.Join(body, " ")
	return parts, scores
}
