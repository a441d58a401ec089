package models

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchSpecValidation(t *testing.T) {
	tests := []struct {
		name    string
		spec    SearchSpec
		wantErr bool
	}{
		{name: "valid spec", spec: SearchSpec{Pattern: "beta", ContextBefore: 1, ContextAfter: 2}},
		{name: "zero context", spec: SearchSpec{Pattern: "beta"}},
		{name: "missing pattern", spec: SearchSpec{}, wantErr: true},
		{name: "negative before", spec: SearchSpec{Pattern: "x", ContextBefore: -1}, wantErr: true},
		{name: "negative after", spec: SearchSpec{Pattern: "x", ContextAfter: -3}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestErrorsUnwrap(t *testing.T) {
	se := &ScanError{Path: "/tmp/a.txt", Err: fs.ErrPermission}
	assert.True(t, errors.Is(se, fs.ErrPermission))
	assert.Contains(t, se.Error(), "/tmp/a.txt")

	te := &TraversalError{Path: "/tmp/missing", Err: fs.ErrNotExist}
	assert.True(t, errors.Is(te, fs.ErrNotExist))

	pe := &PatternError{Pattern: "a(b", Err: errors.New("missing closing )")}
	assert.Contains(t, pe.Error(), `"a(b"`)
}

func TestIsRecoverable(t *testing.T) {
	assert.True(t, IsRecoverable(&ScanError{Path: "x", Err: ErrInvalidEncoding}))
	assert.True(t, IsRecoverable(fmt.Errorf("wrapped: %w", &TraversalError{Path: "y", Err: fs.ErrNotExist})))
	assert.False(t, IsRecoverable(&PatternError{Pattern: "(", Err: errors.New("bad")}))
	assert.False(t, IsRecoverable(errors.New("plain")))
}

func TestSummaryFilesWithErrors(t *testing.T) {
	s := Summary{TraversalErrors: 2, ScanErrors: 3}
	assert.Equal(t, 5, s.FilesWithErrors())
}
