package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"notefiber-editor/internal/config"
	"notefiber-editor/internal/pkg/apperror"
	"notefiber-editor/internal/pkg/logger"
	"notefiber-editor/internal/tracer"
	"notefiber-editor/pkg/editsession"
	"notefiber-editor/pkg/remotesync"

	"github.com/fatih/color"
)

// setFlags collects repeated -set field=value pairs in order.
type setFlags []string

func (s *setFlags) String() string { return strings.Join(*s, ",") }

func (s *setFlags) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	os.Exit(edit())
}

func edit() int {
	cfg := config.Load()

	var sets setFlags
	id := flag.String("id", cfg.Editor.NoteId, "note id to edit; empty starts a new note")
	discard := flag.Bool("discard", false, "discard edits after applying -set")
	save := flag.Bool("save", false, "save the working copy")
	flag.Var(&sets, "set", "field=value edit, repeatable (fields: "+fieldList()+")")
	flag.Parse()

	shutdown := tracer.InitTracer("notefiber-editor-cli")
	defer shutdown(context.Background())

	log := logger.NewIsolatedLogger(cfg.Editor.LogFilePath)
	defer log.Sync()

	client := remotesync.NewHTTPClient(cfg.Editor.StoreBaseURL,
		remotesync.WithToken(cfg.Editor.StoreToken),
		remotesync.WithTimeout(cfg.Editor.RequestTimeout),
		remotesync.WithLogger(log),
	)
	session := editsession.New(client, editsession.Config{RecordId: *id}, editsession.WithLogger(log))
	defer session.Close()

	return run(context.Background(), os.Stdout, session, sets, *discard, *save)
}

func run(ctx context.Context, out io.Writer, session *editsession.Session, sets []string, discard, save bool) int {
	fmt.Fprintln(out, color.CyanString("Loading note..."))
	if err := session.Initialize(ctx); err != nil {
		reportError(out, "Load failed", err)
	} else if apperror.IsNotFound(session.LastError()) {
		fmt.Fprintln(out, color.YellowString("Note %s not found, a save will create it", session.RecordId()))
	}
	render(out, session.Snapshot())

	for _, pair := range sets {
		if err := applySet(session, pair); err != nil {
			fmt.Fprintln(out, color.RedString("Rejected -set %s: %v", pair, err))
			return 2
		}
	}
	if len(sets) > 0 {
		fmt.Fprintln(out, color.YellowString("\nAfter edits:"))
		render(out, session.Snapshot())
	}

	if discard {
		if session.Discard() {
			fmt.Fprintln(out, color.YellowString("\nChanges discarded"))
		} else {
			fmt.Fprintln(out, color.YellowString("\nNothing to discard"))
		}
	}

	if !save {
		return 0
	}

	fmt.Fprintln(out, color.CyanString("\nSaving..."))
	if err := session.Save(ctx); err != nil {
		reportError(out, "Save failed", err)
		return 1
	}
	if session.ConsumeSaved() {
		fmt.Fprintln(out, color.GreenString("Saved note %s", session.RecordId()))
	}
	render(out, session.Snapshot())
	return 0
}

func applySet(session *editsession.Session, pair string) error {
	name, raw, ok := strings.Cut(pair, "=")
	if !ok {
		return fmt.Errorf("expected field=value")
	}
	field, ok := editsession.ParseField(name)
	if !ok {
		return fmt.Errorf("unknown field %q", name)
	}
	value, err := editsession.ParseValue(field, raw)
	if err != nil {
		return err
	}
	if !session.SetField(field, value) {
		return fmt.Errorf("session is busy")
	}
	return nil
}

func reportError(out io.Writer, prefix string, err error) {
	switch {
	case apperror.IsValidation(err):
		fmt.Fprintln(out, color.RedString("%s: %s", prefix, apperror.MessageOf(err)))
	case remotesync.IsTimeout(err):
		fmt.Fprintln(out, color.RedString("%s: the notes store did not answer in time", prefix))
	default:
		fmt.Fprintln(out, color.RedString("%s: %v", prefix, err))
	}
}

// render prints the working copy, marking fields that differ from the
// baseline. Call-to-action fields only show while the call to action is on.
func render(out io.Writer, st editsession.State) {
	status := "new note"
	if st.IsExistingRecord {
		status = "note " + st.RecordId
	}
	dirty := color.GreenString("clean")
	if st.Dirty {
		dirty = color.YellowString("unsaved changes")
	}
	fmt.Fprintf(out, "%s [%s] %s\n", color.New(color.Bold).Sprint(status), st.Mode, dirty)

	for _, f := range editsession.Fields() {
		if !st.Working.ShowCallToAction && (f == editsession.FieldButtonContent || f == editsession.FieldButtonUrl) {
			continue
		}
		w, _ := editsession.Value(st.Working, f)
		b, _ := editsession.Value(st.Baseline, f)
		marker := " "
		if !sameValue(w, b) {
			marker = color.YellowString("*")
		}
		fmt.Fprintf(out, " %s %-17s %s\n", marker, f, formatValue(w))
	}
}

func sameValue(a, b any) bool {
	if at, ok := a.(time.Time); ok {
		return at.Equal(b.(time.Time))
	}
	return a == b
}

func formatValue(v any) string {
	if t, ok := v.(time.Time); ok {
		if t.IsZero() {
			return "-"
		}
		return t.Format(time.DateOnly)
	}
	return fmt.Sprint(v)
}

func fieldList() string {
	names := make([]string, 0, len(editsession.Fields()))
	for _, f := range editsession.Fields() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

