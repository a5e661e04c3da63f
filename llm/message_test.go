package llm

import "testing"

func TestRole_IsValid(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want bool
	}{
		{"system", RoleSystem, true},
		{"user", RoleUser, true},
		{"assistant", RoleAssistant, true},
		{"empty", Role(""), false},
		{"unknown", Role("moderator"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRole_String(t *testing.T) {
	if got := RoleSystem.String(); got != "system" {
		t.Errorf("String() = %q, want %q", got, "system")
	}
}

func TestMessage_IsValid(t *testing.T) {
	tests := []struct {
		name    string
		message Message
		want    bool
	}{
		{
			name:    "valid system message",
			message: Message{Role: RoleSystem, Content: "You are a legal expert."},
			want:    true,
		},
		{
			name:    "valid user message",
			message: Message{Role: RoleUser, Content: "Analyze this contract."},
			want:    true,
		},
		{
			name:    "empty content",
			message: Message{Role: RoleUser},
			want:    false,
		},
		{
			name:    "invalid role",
			message: Message{Role: Role("tool"), Content: "result"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.message.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessageConstructors(t *testing.T) {
	sys := SystemMessage("instructions")
	if sys.Role != RoleSystem || sys.Content != "instructions" {
		t.Errorf("SystemMessage() = %+v", sys)
	}

	usr := UserMessage("prompt")
	if usr.Role != RoleUser || usr.Content != "prompt" {
		t.Errorf("UserMessage() = %+v", usr)
	}
}
