package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type scoreState int

const (
	scoreMissing scoreState = iota
	scoreInvalid
	scoreValid
)

// parseScore coerces whatever the collector sent into a float.
func parseScore(value any) (float64, scoreState) {
	var (
		score float64
		err   error
	)

	switch v := value.(type) {
	case nil:
		return 0, scoreMissing
	case float64:
		score = v
	case float32:
		score = float64(v)
	case int:
		score = float64(v)
	case int64:
		score = float64(v)
	case json.Number:
		score, err = v.Float64()
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, scoreMissing
		}
		score, err = strconv.ParseFloat(trimmed, 64)
	default:
		return 0, scoreInvalid
	}

	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, scoreInvalid
	}
	return score, scoreValid
}
