package logger

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		encoding string
		wantErr  bool
	}{
		{"json info", "info", "json", false},
		{"console debug", "debug", "console", false},
		{"bad level", "loud", "json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.level, tt.encoding, false)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if log != nil {
				_ = log.Sync()
			}
		})
	}
}
