package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureNotifier struct {
	messages []string
}

func (c *captureNotifier) Send(_ context.Context, text string) bool {
	c.messages = append(c.messages, text)
	return true
}

func TestReportFatal(t *testing.T) {
	notifier := &captureNotifier{}
	cause := errors.New("writing scan log: disk I/O error")

	err := reportFatal(context.Background(), notifier, cause)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "SCAN FAILED")
	assert.Contains(t, notifier.messages[0], "disk I/O error")
}
