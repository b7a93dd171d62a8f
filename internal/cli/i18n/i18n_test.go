package i18n

import (
	"testing"

	"github.com/spf13/cobra"

	tuii18n "lmsadmin/internal/tui/i18n"
)

func newTree() (root, db, migrate *cobra.Command) {
	root = &cobra.Command{
		Use:         "lmsadmin",
		Short:       "root.short",
		Annotations: MarkForTranslation(),
	}
	db = &cobra.Command{
		Use:         "db",
		Short:       "db.short",
		Annotations: MarkForTranslation(),
	}
	migrate = &cobra.Command{
		Use:         "migrate",
		Short:       "db.migrate.short",
		Annotations: MarkForTranslation(),
	}
	root.AddCommand(db)
	db.AddCommand(migrate)
	return root, db, migrate
}

func TestTranslateCommands(t *testing.T) {
	root, db, migrate := newTree()
	TranslateCommands(root, tuii18n.New(tuii18n.WithLocale("en")))

	if root.Short != "Manage learning platform records from the terminal" {
		t.Errorf("unexpected root Short %q", root.Short)
	}
	if db.Short != "Manage the database" {
		t.Errorf("unexpected db Short %q", db.Short)
	}
	if migrate.Short != "Apply pending migrations" {
		t.Errorf("unexpected migrate Short %q", migrate.Short)
	}
}

func TestTranslateCommands_Arabic(t *testing.T) {
	root, _, _ := newTree()
	TranslateCommands(root, tuii18n.New(tuii18n.WithLocale("ar")))

	if root.Short == "root.short" || root.Short == "" {
		t.Errorf("expected an Arabic description, got %q", root.Short)
	}
}

func TestTranslateCommands_SkipsUnmarked(t *testing.T) {
	cmd := &cobra.Command{Use: "plain", Short: "root.short"}
	TranslateCommands(cmd, tuii18n.New(tuii18n.WithLocale("en")))

	if cmd.Short != "root.short" {
		t.Errorf("unmarked command should keep its text, got %q", cmd.Short)
	}
}

func TestTranslateCommands_UnknownKeyKept(t *testing.T) {
	cmd := &cobra.Command{Use: "x", Short: "Literal text", Annotations: MarkForTranslation()}
	TranslateCommands(cmd, tuii18n.New(tuii18n.WithLocale("en")))

	if cmd.Short != "Literal text" {
		t.Errorf("expected text without a key to stay, got %q", cmd.Short)
	}
}

func TestCommandPath(t *testing.T) {
	root, db, migrate := newTree()

	tests := []struct {
		cmd  *cobra.Command
		want string
	}{
		{root, "root"},
		{db, "db"},
		{migrate, "db.migrate"},
	}
	for _, tt := range tests {
		if got := commandPath(tt.cmd); got != tt.want {
			t.Errorf("commandPath(%s) = %q, want %q", tt.cmd.Use, got, tt.want)
		}
	}
}

func TestMarkForTranslation(t *testing.T) {
	ann := MarkForTranslation()
	if ann[AnnotationKey] != "true" {
		t.Errorf("expected annotation %q to be 'true', got %q", AnnotationKey, ann[AnnotationKey])
	}
}

func TestMergeAnnotations(t *testing.T) {
	existing := map[string]string{"foo": "bar"}
	merged := MergeAnnotations(existing)

	if merged["foo"] != "bar" {
		t.Error("expected existing annotation to be preserved")
	}
	if merged[AnnotationKey] != "true" {
		t.Error("expected i18n annotation to be added")
	}
	if MergeAnnotations(nil)[AnnotationKey] != "true" {
		t.Error("expected nil annotations to be created")
	}
}
