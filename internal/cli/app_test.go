package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/polymap/internal/logging"
	"github.com/dmitrijs2005/polymap/internal/models"
	"github.com/dmitrijs2005/polymap/internal/session"
	"github.com/dmitrijs2005/polymap/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPasswords makes getPassword return the given passwords in order.
func stubPasswords(t *testing.T, passwords ...string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		require.NotEmpty(t, passwords, "unexpected password prompt")
		pw := []byte(passwords[0])
		passwords = passwords[1:]
		return pw, nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func runApp(t *testing.T, rs store.RecordStore, lines ...string) string {
	t.Helper()
	mgr := session.NewManager(rs, logging.Discard(), session.WithDelay(0))
	var out bytes.Buffer
	app := NewApp(mgr, rs, logging.Discard(), nil, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	app.Run(context.Background())
	return out.String()
}

func ownerPolygons(t *testing.T, rs store.RecordStore, taxID string) []models.Polygon {
	t.Helper()
	accounts := rs.LoadAll(context.Background())
	i := models.IndexByTaxID(accounts, taxID)
	require.GreaterOrEqual(t, i, 0)
	return accounts[i].Polygons
}

func TestApp_RegisterLoginDrawDelete(t *testing.T) {
	rs := store.NewMemoryStore(logging.Discard())
	stubPasswords(t, "123456", "123456", "wrong", "123456")

	out := runApp(t, rs,
		"register", "Marcos", "mv@email.com", "35438040222",
		"login", "354.380.402-22",
		"login", "354.380.402-22",
		"new",
		"click -23.55 -46.63",
		"click -23.56 -46.64",
		"finish",
		"click -23.57 -46.62",
		"finish", "",
		"new",
		"click 10 10", "click 10 11", "click 11 11",
		"finish", "Farm",
		"delete",
		"select 1",
		"list",
		"exit",
	)

	assert.Contains(t, out, "Account created, you can log in now")
	assert.Contains(t, out, "Incorrect password")
	assert.Contains(t, out, "Welcome, 354.380.402-22")
	assert.Contains(t, out, "A polygon needs at least 3 points")
	assert.Contains(t, out, `Saved "Polygon 1"`)
	assert.Contains(t, out, "Polygon name [Polygon 2]")
	assert.Contains(t, out, `Saved "Farm"`)
	assert.Contains(t, out, "Deleted, 1 polygon(s) left")
	assert.Contains(t, out, "1. Farm")

	polys := ownerPolygons(t, rs, "354.380.402-22")
	require.Len(t, polys, 1)
	assert.Equal(t, "Farm", polys[0].Name)
	assert.NotEmpty(t, polys[0].ID)
	assert.Regexp(t, `^#[0-9a-f]{6}$`, polys[0].Color)
}

func TestApp_RestoresSessionAndLogsOut(t *testing.T) {
	rs := store.NewMemoryStore(logging.Discard())
	rs.SetRaw([]byte(`[{"name":"Marcos","email":"mv@email.com","cpf":"354.380.402-22","password":"x","logged":true,
		"polygons":[{"points":[[0,0],[0,2],[2,2],[2,0]],"color":"#ff0000","name":"Field"}]}]`))

	out := runApp(t, rs,
		"whoami",
		"show",
		"delete",
		"select at 1 1",
		"new",
		"click 5 5",
		"click 5 6",
		"show",
		"logout",
		"show",
	)

	assert.Contains(t, out, "Logged in as 354.380.402-22")
	assert.Contains(t, out, "Marcos <mv@email.com> CPF 354.380.402-22, 1 polygon(s)")
	assert.Contains(t, out, "1. Field #ff0000")
	assert.Contains(t, out, "   [0.000000, 2.000000]")
	assert.Contains(t, out, "Deleted, 0 polygon(s) left")
	assert.Contains(t, out, "- - draft - -")
	assert.Contains(t, out, " - [5.000000, 6.000000]")
	assert.Contains(t, out, "Logged out")
	assert.Contains(t, out, "Please log in first")

	assert.Empty(t, ownerPolygons(t, rs, "354.380.402-22"))
	assert.False(t, rs.LoadAll(context.Background())[0].Logged)
}

type readOnlyStore struct {
	*store.MemoryStore
}

func (readOnlyStore) SaveAll(context.Context, []models.Account) error {
	return errors.New("read-only")
}

func TestApp_FailedLogoutStillClosesEditor(t *testing.T) {
	mem := store.NewMemoryStore(logging.Discard())
	mem.SetRaw([]byte(`[{"name":"Marcos","email":"mv@email.com","cpf":"354.380.402-22","password":"x","logged":true}]`))

	out := runApp(t, readOnlyStore{MemoryStore: mem},
		"new",
		"click 1 1",
		"click 1 2",
		"logout",
		"show",
	)

	assert.Contains(t, out, "Internal error, please try again")
	assert.NotContains(t, out, "Logged out")
	assert.Contains(t, out, "Please log in first")
	assert.NotContains(t, out, "- - draft - -")
}

func TestApp_ValidationMessages(t *testing.T) {
	rs := store.NewMemoryStore(logging.Discard())
	stubPasswords(t, "123456", "654321", "123", "123", "123456")

	out := runApp(t, rs,
		"register", "Marcos", "mv@email.com", "35438040222",
		"register", "Marcos", "mv@email.com", "35438040222",
		"login", "000.000.000-00",
		"cpf 35438040222",
		"cpf 123",
	)

	assert.Contains(t, out, "Passwords do not match")
	assert.Contains(t, out, "Password must be at least 6 characters")
	assert.Contains(t, out, "Invalid CPF")
	assert.Contains(t, out, "354.380.402-22 valid")
	assert.Contains(t, out, "123 invalid")
	assert.Empty(t, rs.LoadAll(context.Background()))
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint([]string{"-23.5", "-46.6"})
	require.NoError(t, err)
	assert.Equal(t, models.Point{Lat: -23.5, Lon: -46.6}, p)

	for _, bad := range [][]string{{"1"}, {"a", "1"}, {"1", "b"}, {"91", "0"}, {"0", "181"},
		{"NaN", "NaN"}, {"nan", "1"}, {"1", "NaN"}, {"Inf", "0"}, {"0", "-Inf"}} {
		_, err := parsePoint(bad)
		assert.Error(t, err, "%v", bad)
	}
}
