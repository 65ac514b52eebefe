package validation

import "testing"

func TestValidatePostFields(t *testing.T) {
	cases := []struct {
		name    string
		title   string
		content string
		want    int
	}{
		{"both valid", "valid title", "valid content", 0},
		{"short title only", "abcd", "valid content", 1},
		{"both empty", "", "", 2},
		{"whitespace does not count", "    a    ", "valid content", 1},
		{"exactly five characters", "fiver", "fiver", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			violations := ValidatePostFields(tc.title, tc.content)
			if len(violations) != tc.want {
				t.Errorf("expected %d violations, got %d: %v", tc.want, len(violations), violations)
			}
		})
	}
}

func TestValidateSignup(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		userName string
		password string
		want     int
	}{
		{"all valid", "alice@example.com", "Alice", "abc12", 0},
		{"bad email", "nope", "Alice", "abc12", 1},
		{"empty name", "alice@example.com", "   ", "abc12", 1},
		{"short password", "alice@example.com", "Alice", "ab1", 1},
		{"non-alphanumeric password", "alice@example.com", "Alice", "abc12!", 1},
		{"everything wrong", "nope", "", "!", 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			violations := ValidateSignup(tc.email, tc.userName, tc.password)
			if len(violations) != tc.want {
				t.Errorf("expected %d violations, got %d: %v", tc.want, len(violations), violations)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	if v := ValidateLogin("alice@example.com", "abc12"); len(v) != 0 {
		t.Errorf("expected no violations, got %v", v)
	}
	if v := ValidateLogin("nope", "x"); len(v) != 2 {
		t.Errorf("expected 2 violations, got %v", v)
	}
}

func TestSanitizeName(t *testing.T) {
	if got := SanitizeName("  <script>hi</script>  "); got != "&lt;script&gt;hi&lt;/script&gt;" {
		t.Errorf("unexpected sanitized name: %q", got)
	}
}
