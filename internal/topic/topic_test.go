package topic

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		topic     string
		wantError bool
	}{
		{name: "simple name", topic: "dev", wantError: false},
		{name: "name with dash", topic: "dev-work", wantError: false},
		{name: "name with underscore", topic: "dev_work", wantError: false},
		{name: "name with digits", topic: "sprint42", wantError: false},
		{name: "mixed case", topic: "DevWork", wantError: false},
		{name: "single char", topic: "x", wantError: false},
		{name: "empty", topic: "", wantError: true},
		{name: "contains space", topic: "dev work", wantError: true},
		{name: "contains dot", topic: "dev.work", wantError: true},
		{name: "contains slash", topic: "dev/work", wantError: true},
		{name: "contains colon", topic: "dev:work", wantError: true},
		{name: "shell metacharacter", topic: "dev;rm", wantError: true},
		{name: "unicode letter", topic: "dév", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.topic)
			if (err != nil) != tt.wantError {
				t.Errorf("Validate(%q) error = %v, wantError %v", tt.topic, err, tt.wantError)
			}
			if err != nil {
				var invalid *InvalidNameError
				if !errors.As(err, &invalid) {
					t.Errorf("Validate(%q) error type = %T, want *InvalidNameError", tt.topic, err)
				}
			}
		})
	}
}

func TestSessionName(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{topic: "", want: "ubertmux"},
		{topic: "dev-work", want: "ubertmux-dev-work"},
		{topic: "sysadmin", want: "ubertmux-sysadmin"},
	}

	for _, tt := range tests {
		if got := SessionName(tt.topic); got != tt.want {
			t.Errorf("SessionName(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}

func TestFromSession(t *testing.T) {
	tests := []struct {
		session   string
		wantTopic string
		wantOK    bool
	}{
		{session: "ubertmux", wantTopic: "", wantOK: true},
		{session: "ubertmux-sysadmin", wantTopic: "sysadmin", wantOK: true},
		{session: "ubertmux-dev-work", wantTopic: "dev-work", wantOK: true},
		{session: "ubertmux-", wantTopic: "", wantOK: false},
		{session: "other-tool", wantTopic: "", wantOK: false},
		{session: "ubertmuxer", wantTopic: "", wantOK: false},
		{session: "", wantTopic: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.session, func(t *testing.T) {
			got, ok := FromSession(tt.session)
			if got != tt.wantTopic || ok != tt.wantOK {
				t.Errorf("FromSession(%q) = (%q, %v), want (%q, %v)", tt.session, got, ok, tt.wantTopic, tt.wantOK)
			}
		})
	}
}

func TestEnvSuffix(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{topic: "dev-work", want: "DEV_WORK"},
		{topic: "sysadmin", want: "SYSADMIN"},
		{topic: "a-b-c", want: "A_B_C"},
		{topic: "already_under", want: "ALREADY_UNDER"},
		{topic: "MiXeD-case", want: "MIXED_CASE"},
	}

	for _, tt := range tests {
		if got := EnvSuffix(tt.topic); got != tt.want {
			t.Errorf("EnvSuffix(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}

func TestSessionNameRoundTrip(t *testing.T) {
	for _, name := range []string{"", "dev", "dev-work", "a_b"} {
		got, ok := FromSession(SessionName(name))
		if !ok || got != name {
			t.Errorf("FromSession(SessionName(%q)) = (%q, %v), want (%q, true)", name, got, ok, name)
		}
	}
}
