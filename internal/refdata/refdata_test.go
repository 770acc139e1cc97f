package refdata_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/refdata"
)

func writeRefFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadStates_PreservesFileOrder(t *testing.T) {
	dir := t.TempDir()
	writeRefFile(t, dir, refdata.StatesFile, `{
  "states": {
    "Uttarakhand": "05",
    "Delhi": "07",
    "Uttar Pradesh": "09"
  }
}`)

	states, err := refdata.LoadStates(dir)
	require.NoError(t, err)
	require.Equal(t, 3, states.Len())

	entries := states.Entries()
	assert.Equal(t, gst.StateEntry{Name: "Uttarakhand", Code: "05"}, entries[0])
	assert.Equal(t, gst.StateEntry{Name: "Delhi", Code: "07"}, entries[1])
	assert.Equal(t, gst.StateEntry{Name: "Uttar Pradesh", Code: "09"}, entries[2])

	// Substring tie-break follows file order.
	res := gst.Normalize("Uttar", states)
	assert.Equal(t, "Uttarakhand", res.Name)
}

func TestLoadStates_IgnoresUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeRefFile(t, dir, refdata.StatesFile, `{
  "version": 2,
  "states": {"Delhi": "07"},
  "comment": ["ignored"]
}`)

	states, err := refdata.LoadStates(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, states.Len())
	assert.Equal(t, "07", states.CodeFor("Delhi"))
}

func TestLoadStates_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := refdata.LoadStates(dir)
	assert.Error(t, err, "missing file")

	writeRefFile(t, dir, refdata.StatesFile, `{"states": {}}`)
	_, err = refdata.LoadStates(dir)
	assert.Error(t, err, "empty states")

	writeRefFile(t, dir, refdata.StatesFile, `{"states": ["Delhi"]}`)
	_, err = refdata.LoadStates(dir)
	assert.Error(t, err, "states not an object")
}

func TestLoadCompany(t *testing.T) {
	dir := t.TempDir()
	writeRefFile(t, dir, refdata.CompanyFile, `{
  "name": "Globel Interiors India",
  "address": "New Delhi",
  "gstin": "07AWXPS9168G1ZG",
  "state": "Delhi",
  "state_code": "07"
}`)

	company, err := refdata.LoadCompany(dir)
	require.NoError(t, err)
	assert.Equal(t, "Globel Interiors India", company.Name)
	assert.Equal(t, "Delhi", company.State)
	assert.Equal(t, "07", company.StateCode)
}

func TestLoadCompany_RequiresNameAndState(t *testing.T) {
	dir := t.TempDir()
	writeRefFile(t, dir, refdata.CompanyFile, `{"name": "X"}`)
	_, err := refdata.LoadCompany(dir)
	assert.Error(t, err)
}

func TestCatalog_AddAndPersist(t *testing.T) {
	dir := t.TempDir()
	writeRefFile(t, dir, refdata.CatalogFile, `{
  "products": [
    {"id": 1, "name": "Modular Workstation", "hsn_code": "9403"},
    {"id": 4, "name": "Office Chair", "hsn_code": "9401"}
  ]
}`)

	catalog, err := refdata.OpenCatalog(dir)
	require.NoError(t, err)
	assert.Len(t, catalog.Products(), 2)

	added, err := catalog.Add("  Storage Cabinet ", " 9403 ")
	require.NoError(t, err)
	assert.Equal(t, 5, added.ID, "new ID is max+1")
	assert.Equal(t, "Storage Cabinet", added.Name)
	assert.Equal(t, "9403", added.HSNCode)

	// Persisted: reopen and check.
	reopened, err := refdata.OpenCatalog(dir)
	require.NoError(t, err)
	products := reopened.Products()
	require.Len(t, products, 3)
	assert.Equal(t, "Storage Cabinet", products[2].Name)
}

func TestCatalog_AddValidation(t *testing.T) {
	dir := t.TempDir()
	writeRefFile(t, dir, refdata.CatalogFile, `{"products": [{"id": 1, "name": "Office Chair", "hsn_code": "9401"}]}`)

	catalog, err := refdata.OpenCatalog(dir)
	require.NoError(t, err)

	_, err = catalog.Add("", "9401")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = catalog.Add("Desk", "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = catalog.Add("office chair", "9401")
	assert.ErrorIs(t, err, domain.ErrDuplicateProduct)
}
