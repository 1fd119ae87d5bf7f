package cli

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bleviet/ipcraft/pkg/cache"
	"github.com/bleviet/ipcraft/pkg/session"
)

// editCommand creates the edit command that opens the interactive editor.
func (c *CLI) editCommand() *cobra.Command {
	var mapIndex int

	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Open the interactive terminal editor",
		Long: `Open an address-map document in a terminal editor.

Navigate the hierarchy with the arrow keys, insert and reorder items,
and save back to the file. The editor remembers the last selection per
document across runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			doc, m, err := loadMap(path, mapIndex)
			if err != nil {
				return err
			}

			store, err := session.NewFileStore("")
			if err != nil {
				c.Logger.Debug("session store unavailable", "err", err)
				store = nil
			}

			model := newEditorModel(doc, m, mapIndex)
			model.restoreCursor(c.resumeSession(cmd, store, path, doc))

			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := program.Run()
			if err != nil {
				return err
			}

			done, ok := final.(editorModel)
			if !ok {
				return nil
			}
			c.persistSession(cmd, store, path, done)

			if done.dirty {
				printWarning("unsaved changes were discarded")
			} else if done.saved {
				printSuccess("saved %s", filepath.Base(path))
				printFile(path)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&mapIndex, "map", 0, "memory map index")
	return cmd
}

// resumeSession looks up a previous editing session for the document and
// returns its cursor, or a zero cursor when none exists.
func (c *CLI) resumeSession(cmd *cobra.Command, store session.Store, path string, doc docHasher) session.Cursor {
	if store == nil {
		return session.Cursor{}
	}
	sess, err := store.Find(cmd.Context(), path)
	if err != nil || sess == nil {
		return session.Cursor{}
	}
	if data, err := doc.Bytes(); err == nil && sess.DocHash != cache.Hash(data) {
		c.Logger.Debug("document changed since last session", "path", path)
	}
	return sess.Cursor
}

// persistSession records the editor's final cursor for the next run.
func (c *CLI) persistSession(cmd *cobra.Command, store session.Store, path string, model editorModel) {
	if store == nil {
		return
	}

	sess, err := store.Find(cmd.Context(), path)
	if err != nil || sess == nil {
		hash := ""
		if data, err := model.doc.Bytes(); err == nil {
			hash = cache.Hash(data)
		}
		sess = session.New(path, hash)
	}
	sess.Cursor = model.cursorPosition()
	sess.Touch()
	if err := store.Set(cmd.Context(), sess); err != nil {
		c.Logger.Debug("persist session", "err", err)
	}
}

// docHasher is the slice of document.Document the session logic needs.
type docHasher interface {
	Bytes() ([]byte, error)
}
