package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/ikkim/bizdir-backend/config"
	"github.com/ikkim/bizdir-backend/internal/app/repository"
	"github.com/ikkim/bizdir-backend/internal/app/service"
	"github.com/ikkim/bizdir-backend/internal/db"
	"github.com/ikkim/bizdir-backend/internal/validation"
	"github.com/ikkim/bizdir-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// columns maps accepted header spellings to BusinessInput fields
var columns = map[string]string{
	"name":           "name",
	"business name":  "name",
	"category":       "category",
	"sub category":   "subCategory",
	"subcategory":    "subCategory",
	"province":       "province",
	"city":           "city",
	"area":           "area",
	"postal code":    "postalCode",
	"postalcode":     "postalCode",
	"address":        "address",
	"phone":          "phone",
	"contact person": "contactPerson",
	"whatsapp":       "whatsapp",
	"email":          "email",
	"description":    "description",
	"website":        "website",
	"facebook":       "facebook",
	"instagram":      "instagram",
}

var headerSpace = regexp.MustCompile(`[\s_\-]+`)

type importRow struct {
	line  int
	input validation.BusinessInput
}

func main() {
	yes := flag.Bool("yes", false, "import without asking for confirmation")
	sheet := flag.String("sheet", "", "sheet to read (default: first sheet)")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("Usage: go run ./cmd/seed [-yes] [-sheet name] <xlsx_file_path>")
	}
	filePath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger.Initialize(logger.Config{Level: "info", Format: "console", EnableColor: true})

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, skipped, err := readBusinessesFromXLSX(filePath, *sheet)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}
	fmt.Printf("Rows to import: %d (skipped %d empty or duplicate rows)\n", len(rows), skipped)
	if len(rows) == 0 {
		return
	}

	if !*yes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		_, _ = fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Imports go through the same path as web submissions, without logos
	businessService := service.NewBusinessService(
		repository.NewBusinessRepository(db.GetDB()),
		repository.NewCategoryRepository(db.GetDB()),
		nil,
	)

	created, rejected := importRows(context.Background(), businessService, rows, os.Stdout)

	fmt.Println("Import completed.")
	fmt.Printf("  Created:  %d\n", created)
	fmt.Printf("  Rejected: %d\n", rejected)
}

func readBusinessesFromXLSX(filePath, sheetName string) ([]importRow, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, 0, errors.New("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, errors.New("no data found in XLSX file")
	}

	parsed, skipped := parseRows(rows)
	return parsed, skipped, nil
}

// parseRows maps the header row onto BusinessInput and drops blank rows and
// rows repeating an earlier name+city+address.
func parseRows(rows [][]string) ([]importRow, int) {
	header := make(map[int]string)
	for i, title := range rows[0] {
		key := headerSpace.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), " ")
		if field, ok := columns[key]; ok {
			header[i] = field
		}
	}

	var out []importRow
	seen := make(map[string]bool)
	skipped := 0

	for i, row := range rows[1:] {
		values := make(map[string]string)
		for col, field := range header {
			if col < len(row) {
				values[field] = strings.TrimSpace(row[col])
			}
		}
		if values["name"] == "" {
			skipped++
			continue
		}

		key := strings.ToLower(values["name"] + "|" + values["city"] + "|" + values["address"])
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		out = append(out, importRow{
			line: i + 2,
			input: validation.BusinessInput{
				Name:          values["name"],
				Category:      values["category"],
				SubCategory:   values["subCategory"],
				Province:      values["province"],
				City:          values["city"],
				Area:          values["area"],
				PostalCode:    values["postalCode"],
				Address:       values["address"],
				Phone:         values["phone"],
				ContactPerson: values["contactPerson"],
				WhatsApp:      values["whatsapp"],
				Email:         values["email"],
				Description:   values["description"],
				Website:       values["website"],
				Facebook:      values["facebook"],
				Instagram:     values["instagram"],
			},
		})
	}

	return out, skipped
}

func importRows(ctx context.Context, businessService service.BusinessService, rows []importRow, out io.Writer) (created, rejected int) {
	for _, row := range rows {
		input := row.input
		if _, err := businessService.Create(ctx, &input, nil); err != nil {
			rejected++
			var invalid *service.InvalidInputError
			if errors.As(err, &invalid) {
				fmt.Fprintf(out, "  line %d: %q rejected: %v\n", row.line, input.Name, invalid.Fields)
				continue
			}
			fmt.Fprintf(out, "  line %d: %q failed: %v\n", row.line, input.Name, err)
			continue
		}

		created++
		if created%100 == 0 {
			fmt.Fprintf(out, "Imported %d businesses...\n", created)
		}
	}
	return created, rejected
}
