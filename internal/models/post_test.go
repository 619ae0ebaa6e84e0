package models

import (
	"encoding/json"
	"testing"
)

func TestPostMarshalJSON(t *testing.T) {
	tests := []struct {
		name       string
		anonymous  bool
		wantUserID float64
	}{
		{name: "regular post keeps author", anonymous: false, wantUserID: 42},
		{name: "anonymous post masks author", anonymous: true, wantUserID: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := Post{UserID: 42, Anonymous: tt.anonymous, Caption: "test"}

			data, err := json.Marshal(post)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			var decoded map[string]interface{}
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got := decoded["user_id"].(float64); got != tt.wantUserID {
				t.Errorf("serialized user_id = %v, want %v", got, tt.wantUserID)
			}

			// Masking is serialization-only; the struct keeps the owner.
			if post.UserID != 42 {
				t.Errorf("post.UserID = %d, want storage value untouched", post.UserID)
			}
		})
	}
}
