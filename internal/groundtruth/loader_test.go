package groundtruth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Record
		wantErr bool
	}{
		{
			name: "plain record",
			data: `{"company": "UNIHAKKA INTERNATIONAL SDN BHD", "date": "18/03/2018", "total": "8.20"}`,
			want: Record{Company: "UNIHAKKA INTERNATIONAL SDN BHD", Date: "18/03/2018", Total: "8.20"},
		},
		{
			name: "numeric total coerced to string",
			data: `{"company": "AEON CO. (M) BHD", "date": "2018-03-18", "total": 12.5}`,
			want: Record{Company: "AEON CO. (M) BHD", Date: "2018-03-18", Total: "12.50"},
		},
		{
			name: "leading BOM tolerated",
			data: "\xef\xbb\xbf" + `{"company": "X SDN BHD", "date": "01/01/2019", "total": "1.00"}`,
			want: Record{Company: "X SDN BHD", Date: "01/01/2019", Total: "1.00"},
		},
		{
			name: "extra keys allowed",
			data: `{"company": "X SDN BHD", "date": "01/01/2019", "total": "1.00", "address": "JALAN BESAR"}`,
			want: Record{Company: "X SDN BHD", Date: "01/01/2019", Total: "1.00"},
		},
		{name: "missing company rejected", data: `{"date": "01/01/2019", "total": "1.00"}`, wantErr: true},
		{name: "missing total rejected", data: `{"company": "X", "date": "01/01/2019"}`, wantErr: true},
		{name: "not json", data: `company: X`, wantErr: true},
		{name: "empty", data: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Parse([]byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "X00016469612.txt")
	require.NoError(t, os.WriteFile(path, []byte(`{"company": "BOOK TA .K (TAMAN DAYA) SDN BHD", "date": "25/12/2018", "total": "9.00"}`), 0o644))

	rec, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "BOOK TA .K (TAMAN DAYA) SDN BHD", rec.Company)

	_, err = Load(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestListDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", "ignore.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	names, err := ListDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}
