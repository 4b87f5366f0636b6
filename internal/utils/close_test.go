package utils

import (
	"errors"
	"testing"

	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseLogged(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"clean close", nil, true},
		{"failed close", errors.New("broken pipe"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			c := closerFunc(func() error {
				calls++
				return tt.err
			})
			if got := CloseLogged(c, "test", logger.NewNop()); got != tt.want {
				t.Errorf("CloseLogged() = %v, want %v", got, tt.want)
			}
			if calls != 1 {
				t.Errorf("Close called %d times, want 1", calls)
			}
		})
	}
}
