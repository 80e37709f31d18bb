package sapdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/matthewbaird/silic/internal/types"
)

// FallbackNotice is attached to a generated dataset that replaced an
// export which could not be loaded.
const FallbackNotice = "Arquivo de dados SAP indisponível. Usando dados de demonstração."

// maxExportSize bounds how much of a remote export is read.
const maxExportSize = 64 << 20

var (
	errNoProperties  = errors.New(`export has no usable "imoveis"`)
	errDuplicateID   = errors.New("duplicate property id")
	errDuplicateCode = errors.New("duplicate contract number")
)

// Load reads an export from a file path or an http(s) URL and maps it.
func Load(ctx context.Context, client *http.Client, src string) (types.Dataset, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		data, err = fetch(ctx, client, src)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return types.Dataset{}, fmt.Errorf("reading export %s: %w", src, err)
	}
	return Decode(data)
}

// Decode parses and maps an export. Beyond valid JSON it needs an
// "imoveis" list whose ids and contract numbers are unique.
func Decode(data []byte) (types.Dataset, error) {
	var head struct {
		Properties json.RawMessage `json:"imoveis"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return types.Dataset{}, fmt.Errorf("decoding export: %w", err)
	}
	if len(bytes.TrimSpace(head.Properties)) == 0 || bytes.Equal(bytes.TrimSpace(head.Properties), []byte("null")) {
		return types.Dataset{}, errNoProperties
	}
	var e Export
	if err := json.Unmarshal(data, &e); err != nil {
		return types.Dataset{}, fmt.Errorf("decoding export: %w", err)
	}
	return Map(e)
}

func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxExportSize))
}

// LoadOrGenerate loads the export at src and falls back to generate on any
// failure, attaching FallbackNotice. An empty src goes straight to the
// generator without a notice.
func LoadOrGenerate(ctx context.Context, client *http.Client, src string, generate func() types.Dataset) types.Dataset {
	if src == "" {
		return generate()
	}
	ds, err := Load(ctx, client, src)
	if err == nil {
		log.Printf("sapdata: loaded %d properties and %d landlords from %s", len(ds.Properties), len(ds.Landlords), src)
		return ds
	}
	log.Printf("sapdata: %v; using generated demo data", err)
	ds = generate()
	ds.Notice = FallbackNotice
	return ds
}
