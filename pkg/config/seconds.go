package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Seconds is a duration written either as plain seconds ("2.5") or as a Go
// duration ("2500ms"). It implements flag.Value and yaml.Unmarshaler.
type Seconds time.Duration

// ParseSeconds parses s as Seconds. Negative values are rejected.
func ParseSeconds(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	var d time.Duration
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64/float64(time.Second) {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		if f < 0 {
			return 0, fmt.Errorf("duration %q must not be negative", s)
		}
		d = time.Duration(f * float64(time.Second))
	} else {
		parsed, perr := time.ParseDuration(s)
		if perr != nil {
			return 0, fmt.Errorf("invalid duration %q: want seconds or a duration like 500ms", s)
		}
		d = parsed
	}
	if d < 0 {
		return 0, fmt.Errorf("duration %q must not be negative", s)
	}
	return d, nil
}

func (s *Seconds) String() string {
	if s == nil {
		return "0s"
	}
	return time.Duration(*s).String()
}

// Set implements flag.Value.
func (s *Seconds) Set(v string) error {
	d, err := ParseSeconds(v)
	if err != nil {
		return err
	}
	*s = Seconds(d)
	return nil
}

// UnmarshalYAML accepts numbers and duration strings.
func (s *Seconds) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a duration", node.Line)
	}
	if err := s.Set(node.Value); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}
