package wellness

import "testing"

func TestNormalizeMood(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"exact lowercase", "happy", MoodHappy},
		{"exact canonical", "Happy", MoodHappy},
		{"uppercase", "STRESSED", MoodStressed},
		{"surrounding whitespace", "  calm  ", MoodCalm},
		{"punctuation noise", "anxious!!!", MoodAnxious},
		{"emoji noise", "happy 😊", MoodHappy},
		{"embedded keyword", "feeling very sad today", MoodSad},
		{"anxiety variant", "anxiety", MoodAnxious},
		{"stress variant", "so much stress", MoodStressed},
		{"content keyword", "quite content", MoodContent},
		{"angry", "ANGRY?!", MoodAngry},
		{"neutral", "neutral-ish", MoodNeutral},
		{"empty", "", MoodUnknown},
		{"only symbols", "!!!???", MoodUnknown},
		{"unmatched fallback", "melancholic", "Melancholic"},
		{"unmatched multi word keeps first token", "overjoyed beyond words", "Overjoyed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeMood(tc.raw)
			if got != tc.want {
				t.Errorf("NormalizeMood(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

// 归一化结果再次归一化必须得到同一结果
func TestNormalizeMoodIdempotent(t *testing.T) {
	inputs := append([]string{}, CanonicalMoods...)
	inputs = append(inputs, "feeling very sad today", "anxiety", "melancholic", "", "happy 😊")

	for _, raw := range inputs {
		once := NormalizeMood(raw)
		twice := NormalizeMood(once)
		if once != twice {
			t.Errorf("NormalizeMood not idempotent for %q: %q -> %q", raw, once, twice)
		}
	}
}

// happy 在优先级表中先于 sad，包含多个关键字时取先匹配的
func TestNormalizeMoodKeywordPriority(t *testing.T) {
	got := NormalizeMood("sad but happy")
	if got != MoodHappy {
		t.Errorf("NormalizeMood(\"sad but happy\") = %q, want %q", got, MoodHappy)
	}
}

func TestMoodPolarity(t *testing.T) {
	positives := []string{MoodHappy, MoodCalm, MoodContent}
	negatives := []string{MoodSad, MoodAngry, MoodAnxious, MoodStressed}

	for _, m := range positives {
		if !IsPositiveMood(m) {
			t.Errorf("IsPositiveMood(%q) = false", m)
		}
		if IsNegativeMood(m) {
			t.Errorf("IsNegativeMood(%q) = true", m)
		}
	}
	for _, m := range negatives {
		if !IsNegativeMood(m) {
			t.Errorf("IsNegativeMood(%q) = false", m)
		}
	}
	if IsPositiveMood(MoodNeutral) || IsNegativeMood(MoodNeutral) {
		t.Error("Neutral should be neither positive nor negative")
	}
	if IsPositiveMood(MoodUnknown) || IsNegativeMood(MoodUnknown) {
		t.Error("Unknown should be neither positive nor negative")
	}
}
