package models

import (
	"testing"
	"time"
)

func TestAccountValidate(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		wantErr bool
	}{
		{
			name:    "valid account",
			account: Account{ID: "add60fd1792f4ab99a53e2f859482c59", Email: "alice@example.com"},
			wantErr: false,
		},
		{
			name:    "hyphenated id still valid",
			account: Account{ID: "add60fd1-792f-4ab9-9a53-e2f859482c59", Email: "alice@example.com"},
			wantErr: false,
		},
		{
			name:    "missing email",
			account: Account{ID: "add60fd1792f4ab99a53e2f859482c59"},
			wantErr: true,
		},
		{
			name:    "garbage id",
			account: Account{ID: "user-123", Email: "alice@example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAccountGetDisplayName(t *testing.T) {
	a := Account{Email: "bob@example.com"}
	if got := a.GetDisplayName(); got != "bob@example.com" {
		t.Errorf("expected email fallback, got %q", got)
	}

	a.DisplayName = "Bob"
	if got := a.GetDisplayName(); got != "Bob" {
		t.Errorf("expected display name, got %q", got)
	}
}

func TestTaskStatusIsValid(t *testing.T) {
	for _, s := range []TaskStatus{StatusPending, StatusInProgress, StatusCompleted} {
		if !s.IsValid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if TaskStatus("done").IsValid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestTaskComplete(t *testing.T) {
	task := Task{Title: "write report", Status: StatusInProgress}
	now := time.Now()
	task.Complete(now)

	if task.Status != StatusCompleted {
		t.Errorf("expected status completed, got %s", task.Status)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Error("expected completion timestamp to be set")
	}
}

func TestTaskValidate(t *testing.T) {
	task := Task{}
	if err := task.Validate(); err == nil {
		t.Error("expected error for missing title")
	}

	task.Title = "write report"
	task.Status = "done"
	if err := task.Validate(); err == nil {
		t.Error("expected error for invalid status")
	}

	task.Status = StatusPending
	if err := task.Validate(); err != nil {
		t.Errorf("expected valid task, got %v", err)
	}
}
