package artifact

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/Hayagreevan-K/recommendation-sys/internal/catalog"
)

const (
	columnProductID = "product_id"
	columnTitle     = "title"
)

// loadCatalogTable normalizes both accepted serialized forms (CSV table,
// JSON record array) into the same in-memory rows. If identifier or title
// columns are missing, both are synthesized from the row ordinal so every
// record is always fully populated.
func loadCatalogTable(primaryPath, fallbackPath string) ([]catalog.Product, Result) {
	products, result := loadCatalogCSV(primaryPath)
	if result.Status == StatusLoaded {
		return products, result
	}
	fallbackProducts, fallbackResult := loadCatalogJSON(fallbackPath)
	if fallbackResult.Status == StatusLoaded {
		return fallbackProducts, fallbackResult
	}
	// report the primary's failure unless only the fallback was malformed
	if result.Status == StatusAbsent && fallbackResult.Status == StatusMalformed {
		return nil, fallbackResult
	}
	return nil, result
}

func loadCatalogCSV(path string) ([]catalog.Product, Result) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, absent()
		}
		return nil, malformed(err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, malformed(fmt.Errorf("failed to parse %s: %w", path, err))
	}
	if len(rows) == 0 {
		return nil, malformed(fmt.Errorf("catalog table %s has no header row", path))
	}

	header := rows[0]
	idColumn, titleColumn := -1, -1
	for i, name := range header {
		switch name {
		case columnProductID:
			idColumn = i
		case columnTitle:
			titleColumn = i
		}
	}

	products := make([]catalog.Product, 0, len(rows)-1)
	for ordinal, row := range rows[1:] {
		product := catalog.Product{
			ID:    synthesizedID(ordinal),
			Title: synthesizedTitle(ordinal),
		}
		if idColumn >= 0 && idColumn < len(row) {
			product.ID = row[idColumn]
		}
		if titleColumn >= 0 && titleColumn < len(row) {
			product.Title = row[titleColumn]
		}
		for i, value := range row {
			if i == idColumn || i == titleColumn || i >= len(header) {
				continue
			}
			if product.Extra == nil {
				product.Extra = make(map[string]string)
			}
			product.Extra[header[i]] = value
		}
		products = append(products, product)
	}
	return products, loaded()
}

func loadCatalogJSON(path string) ([]catalog.Product, Result) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, absent()
		}
		return nil, malformed(err)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, malformed(fmt.Errorf("failed to parse %s: %w", path, err))
	}

	products := make([]catalog.Product, 0, len(records))
	for ordinal, record := range records {
		product := catalog.Product{
			ID:    synthesizedID(ordinal),
			Title: synthesizedTitle(ordinal),
		}
		if value, ok := record[columnProductID]; ok {
			product.ID = stringify(value)
		}
		if value, ok := record[columnTitle]; ok {
			product.Title = stringify(value)
		}
		for key, value := range record {
			if key == columnProductID || key == columnTitle {
				continue
			}
			if product.Extra == nil {
				product.Extra = make(map[string]string)
			}
			product.Extra[key] = stringify(value)
		}
		products = append(products, product)
	}
	return products, loaded()
}

func synthesizedID(ordinal int) string {
	return strconv.Itoa(ordinal)
}

func synthesizedTitle(ordinal int) string {
	return "Product " + strconv.Itoa(ordinal)
}

// stringify mirrors the id normalization of the build pipeline, which casts
// identifiers to strings before writing the artifacts
func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
