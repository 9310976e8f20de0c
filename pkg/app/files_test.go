package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/contractmask/pkg/batch"
	"github.com/codeready-toolchain/contractmask/pkg/models"
)

func TestReadDocuments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("ikinci"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.TXT"), []byte("birinci"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("skip"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0o700))

	docs, err := ReadDocuments(dir)
	require.NoError(t, err)
	assert.Equal(t, []batch.Document{
		{ID: "a", Text: "birinci"},
		{ID: "b", Text: "ikinci"},
	}, docs)
}

func TestReadDocuments_MissingDir(t *testing.T) {
	_, err := ReadDocuments(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	report := &batch.Report{Outcomes: []batch.Outcome{
		{
			DocumentID: "sozlesme",
			Sentences: []models.Sentence{
				{Ordinal: 1, Original: "Hesap No: 1234567890", Masked: "Hesap No: [BANKA_BILGISI]"},
				{Ordinal: 2, Original: "Taraflar, anlaşmıştır.", Masked: "Taraflar, anlaşmıştır."},
			},
		},
		{DocumentID: "bozuk", Err: errors.New("collision")},
		{},
	}}

	require.NoError(t, WriteReport(dir, report, true))

	data, err := os.ReadFile(filepath.Join(dir, "sozlesme.csv"))
	require.NoError(t, err)
	assert.Equal(t, "\uFEFFid,original,masked\n"+
		"1,Hesap No: 1234567890,Hesap No: [BANKA_BILGISI]\n"+
		"2,\"Taraflar, anlaşmıştır.\",\"Taraflar, anlaşmıştır.\"\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
