package server

import (
	"testing"

	"go.uber.org/zap"

	"github.com/Desiders/tg-old-chats-manager/internal/tgdata"
)

func TestHandlers(t *testing.T) {
	handlers := Handlers(tgdata.NewService(nil, 1), zap.NewNop())

	want := []string{"AnalyzeChats", "JoinChat", "DeleteChat"}
	if len(handlers) != len(want) {
		t.Fatalf("Handlers() returned %d handlers, want %d", len(handlers), len(want))
	}
	for i, h := range handlers {
		if got := h.Tool().Name; got != want[i] {
			t.Errorf("handler %d name = %q, want %q", i, got, want[i])
		}
	}

	tool := handlers[2].Tool()
	if tool.Annotations.DestructiveHint == nil || !*tool.Annotations.DestructiveHint {
		t.Errorf("DeleteChat is not marked destructive")
	}
}
