package documents_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
	"github.com/KirkDiggler/dnd-creation-engine/internal/repositories/documents"
)

func TestDiskRepository(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := documents.NewDisk(dir)

	t.Run("miss is not found", func(t *testing.T) {
		_, err := repo.Get(ctx, "races/elf.json")
		assert.True(t, dnderr.IsNotFound(err))
	})

	t.Run("writes under the repository path", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "races/elf.json", []byte(`{"id":"elf"}`)))

		onDisk, err := os.ReadFile(filepath.Join(dir, "races", "elf.json"))
		require.NoError(t, err)
		assert.Equal(t, `{"id":"elf"}`, string(onDisk))

		got, err := repo.Get(ctx, "races/elf.json")
		require.NoError(t, err)
		assert.Equal(t, `{"id":"elf"}`, string(got))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "races/elf.json"))
		require.NoError(t, repo.Delete(ctx, "races/elf.json"))
	})

	t.Run("rejects paths outside the directory", func(t *testing.T) {
		for _, p := range []string{"../secret.json", "races/../../x.json", ""} {
			err := repo.Set(ctx, p, []byte(`{}`))
			assert.True(t, dnderr.IsInvalidArgument(err), "path %q", p)
		}
	})
}
