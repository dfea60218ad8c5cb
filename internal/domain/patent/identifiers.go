package patent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Identifier patterns (after separators are stripped)
// ─────────────────────────────────────────────────────────────────────────────

var (
	// reApplication matches US serial numbers: 14095073, 61706484, 29512345.
	reApplication = regexp.MustCompile(`^\d{6,8}$`)

	// rePCT matches international application numbers: PCT/US03/31405, PCTUS2019012345.
	rePCT = regexp.MustCompile(`^PCT/?([A-Z]{2})(\d{2}|\d{4})/?(\d{5,6})$`)

	// rePatent matches utility, design, plant, reissue and SIR numbers: 6095661, D123456, RE45678.
	rePatent = regexp.MustCompile(`^(RE|PP|D|H|T)?(\d{4,8})$`)

	// rePublication matches pre-grant publications: US20060127129A1.
	rePublication = regexp.MustCompile(`^US(\d{4})(\d{7})([A-Z]\d?)?$`)

	separators = strings.NewReplacer(" ", "", ",", "", "-", "", ".", "")
)

// CanonicalIdentifier validates raw against class and returns the canonical
// spelling used for querying and deduplication.  Malformed input yields an
// ErrCodeMalformedIdentifier error.
func CanonicalIdentifier(class IdentifierClass, raw string) (string, error) {
	v := strings.ToUpper(separators.Replace(strings.TrimSpace(raw)))
	if v == "" {
		return "", malformed(class, raw)
	}

	switch class {
	case ClassApplication:
		if m := rePCT.FindStringSubmatch(v); m != nil {
			return fmt.Sprintf("PCT/%s%s/%s", m[1], m[2], m[3]), nil
		}
		v = strings.TrimPrefix(strings.ReplaceAll(v, "/", ""), "US")
		if reApplication.MatchString(v) {
			return v, nil
		}

	case ClassPatent:
		v = strings.TrimPrefix(v, "US")
		v = stripKindCode(v)
		if m := rePatent.FindStringSubmatch(v); m != nil {
			digits := strings.TrimLeft(m[2], "0")
			if digits == "" {
				break
			}
			return m[1] + digits, nil
		}

	case ClassPublication:
		v = strings.ReplaceAll(v, "/", "")
		if !strings.HasPrefix(v, "US") {
			v = "US" + v
		}
		if m := rePublication.FindStringSubmatch(v); m != nil {
			kind := m[3]
			if kind == "" {
				kind = "A1"
			}
			return "US" + m[1] + m[2] + kind, nil
		}

	default:
		return "", errors.New(errors.ErrCodeUnknownFilterField, "unknown identifier class").
			WithDetail(string(class))
	}
	return "", malformed(class, raw)
}

// stripKindCode removes a trailing grant kind code (B1, B2, E, S, P2 ...).
func stripKindCode(v string) string {
	for _, kind := range []string{"B1", "B2", "P2", "P3", "E1", "E", "S", "H"} {
		if strings.HasSuffix(v, kind) && len(v) > len(kind)+4 {
			return strings.TrimSuffix(v, kind)
		}
	}
	return v
}

func malformed(class IdentifierClass, raw string) *errors.AppError {
	return errors.New(errors.ErrCodeMalformedIdentifier, "malformed identifier").
		WithDetail(fmt.Sprintf("%s=%q", class, raw))
}

//Personal.AI order the ending
