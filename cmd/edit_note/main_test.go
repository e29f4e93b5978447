package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"notefiber-editor/internal/entity"
	"notefiber-editor/internal/pkg/apperror"
	"notefiber-editor/pkg/editsession"
	"notefiber-editor/pkg/remotesync/remotesynctest"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestRunEditsAndSaves(t *testing.T) {
	fake := remotesynctest.New()
	fake.Put("2", entity.Note{Title: "A", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	session := editsession.New(fake, editsession.Config{RecordId: "2"})

	var out bytes.Buffer
	code := run(context.Background(), &out, session, []string{
		"title=A2",
		"showCallToAction=true",
		"buttonUrl=https://example.com",
	}, false, true)

	require.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "Saved note 2")
	assert.Contains(t, out.String(), "* buttonUrl")

	stored, _ := fake.Get("2")
	assert.Equal(t, "A2", stored.Title)
	assert.True(t, stored.ShowCallToAction)
}

func TestRunHidesCallToActionFieldsWhenOff(t *testing.T) {
	session := editsession.New(remotesynctest.New(), editsession.Config{})

	var out bytes.Buffer
	require.Equal(t, 0, run(context.Background(), &out, session, nil, false, false))
	assert.Contains(t, out.String(), "new note")
	assert.NotContains(t, out.String(), "buttonUrl")
}

func TestRunRejectsBadSet(t *testing.T) {
	session := editsession.New(remotesynctest.New(), editsession.Config{})

	var out bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), &out, session, []string{"date=tomorrow"}, false, false))
	assert.Equal(t, 2, run(context.Background(), &bytes.Buffer{}, editsession.New(remotesynctest.New(), editsession.Config{}), []string{"nope"}, false, false))
}

func TestRunDiscardThenSaveReportsValidation(t *testing.T) {
	fake := remotesynctest.New()
	fake.FailNext("Create", apperror.Validation("Title is required"))
	session := editsession.New(fake, editsession.Config{})

	var out bytes.Buffer
	code := run(context.Background(), &out, session, []string{"title=A"}, true, true)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Changes discarded")
	assert.Contains(t, out.String(), "Save failed: Title is required")
}

func TestRunReportsMissingNoteAndCreatesIt(t *testing.T) {
	fake := remotesynctest.New()
	session := editsession.New(fake, editsession.Config{RecordId: "7"})

	var out bytes.Buffer
	code := run(context.Background(), &out, session, []string{"title=Fresh"}, false, true)

	require.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "Note 7 not found, a save will create it")
	assert.Contains(t, out.String(), "Saved note 7")
	assert.Equal(t, 1, fake.CallCount("Create"))
}
