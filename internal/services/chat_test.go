package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dolegal-backend/internal/models"
)

type stubGenerator struct {
	replies map[string]string
	errs    map[string]error
	prompts []string
}

// Prompts starting with the title template are answered under the "title" key.
func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	key := CallMessage
	if strings.HasPrefix(prompt, "Generate a very short, concise title") {
		key = CallTitle
	}
	if err := s.errs[key]; err != nil {
		return "", err
	}
	return s.replies[key], nil
}

func TestChat_NotConfigured(t *testing.T) {
	svc := NewChatService(nil, nil)

	resp, err := svc.Chat(context.Background(), models.ChatRequest{Message: "hi", IsFirstUserMessage: true})
	if !errors.Is(err, ErrAINotConfigured) {
		t.Fatalf("expected ErrAINotConfigured, got %v", err)
	}
	if resp != nil {
		t.Fatalf("expected no response, got %+v", resp)
	}
}

func TestChat_NotFirstMessageHasNoTitle(t *testing.T) {
	gen := &stubGenerator{replies: map[string]string{
		CallMessage: "You may terminate the lease with 30 days notice.",
		CallTitle:   "Lease Termination",
	}}
	svc := NewChatService(gen, nil)

	resp, err := svc.Chat(context.Background(), models.ChatRequest{
		Message: "Can I end my lease early?",
		ChatID:  "chat-42",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &models.ChatResponse{
		ResponseText: "You may terminate the lease with 30 days notice.",
		Citations:    []string{"Armenian Civil Code, Article 123", "Law on Legal Acts, Section 4"},
		NewTitle:     nil,
		ChatID:       "chat-42",
	}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("unexpected response (-want +got):\n%s", diff)
	}
	if len(gen.prompts) != 1 || gen.prompts[0] != "Can I end my lease early?" {
		t.Errorf("expected exactly one call with the raw message, got %q", gen.prompts)
	}
}

func TestChat_FirstMessageGeneratesCleanTitle(t *testing.T) {
	gen := &stubGenerator{replies: map[string]string{
		CallMessage: "Here is what the law says.",
		CallTitle:   "  \"Contract Dispute\"\n",
	}}
	svc := NewChatService(gen, nil)

	resp, err := svc.Chat(context.Background(), models.ChatRequest{
		Message:            "My supplier broke our contract",
		IsFirstUserMessage: true,
		ChatID:             "",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.NewTitle == nil || *resp.NewTitle != "Contract Dispute" {
		t.Fatalf("expected title %q, got %v", "Contract Dispute", resp.NewTitle)
	}
	if resp.ChatID != "" {
		t.Errorf("expected empty chat id to be echoed, got %q", resp.ChatID)
	}

	wantPrompts := []string{
		"My supplier broke our contract",
		"Generate a very short, concise title (3-5 words max) for a legal conversation starting with: 'My supplier broke our contract'. Use the same language.",
	}
	if diff := cmp.Diff(wantPrompts, gen.prompts); diff != "" {
		t.Errorf("unexpected call order (-want +got):\n%s", diff)
	}
}

func TestChat_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name      string
		errs      map[string]error
		wantCall  string
		wantCalls int
	}{
		{"message call fails", map[string]error{CallMessage: errors.New("deadline exceeded")}, CallMessage, 1},
		{"title call fails", map[string]error{CallTitle: errors.New("quota exceeded")}, CallTitle, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := &stubGenerator{
				replies: map[string]string{CallMessage: "answer", CallTitle: "title"},
				errs:    tc.errs,
			}
			svc := NewChatService(gen, nil)

			resp, err := svc.Chat(context.Background(), models.ChatRequest{Message: "q", IsFirstUserMessage: true})
			if resp != nil {
				t.Fatalf("expected main response to be discarded, got %+v", resp)
			}

			var upstream *UpstreamError
			if !errors.As(err, &upstream) {
				t.Fatalf("expected *UpstreamError, got %T: %v", err, err)
			}
			if upstream.Call != tc.wantCall {
				t.Errorf("expected failing call %q, got %q", tc.wantCall, upstream.Call)
			}
			if !errors.Is(err, tc.errs[tc.wantCall]) {
				t.Errorf("expected wrapped cause to be preserved")
			}
			if len(gen.prompts) != tc.wantCalls {
				t.Errorf("expected %d calls, got %d", tc.wantCalls, len(gen.prompts))
			}
		})
	}
}

func TestCitations_ReturnsCopy(t *testing.T) {
	first := Citations()
	first[0] = "mutated"

	if got := Citations()[0]; got != "Armenian Civil Code, Article 123" {
		t.Fatalf("expected citations to be immutable, got %q", got)
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"Contract Dispute"`, "Contract Dispute"},
		{"  Lease Termination \n", "Lease Termination"},
		{`The "Fair Use" Question`, "The Fair Use Question"},
		{`""`, ""},
	}

	for _, tc := range tests {
		if got := cleanTitle(tc.in); got != tc.want {
			t.Errorf("cleanTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
