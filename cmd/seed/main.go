// seed importa productos al catálogo desde un CSV exportado de la hoja de inventario de la tienda.
//
// Uso: go run ./cmd/seed [-encoding windows-1252] [-dry-run] productos.csv
//
// Columnas (con cabecera): name,category,price,stock,condition,description
// La hoja se exporta desde Excel en Windows-1252; con -encoding se decodifica antes de parsear.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/usecase"
	"github.com/irvanshandika/PUSCOM-sub000/internal/infrastructure/postgres"
	"github.com/irvanshandika/PUSCOM-sub000/pkg/config"
	"github.com/irvanshandika/PUSCOM-sub000/pkg/logger"
)

var columns = []string{"name", "category", "price", "stock", "condition", "description"}

// rowError fila descartada con su motivo.
type rowError struct {
	Line int
	Err  error
}

func main() {
	encoding := flag.String("encoding", "utf-8", "codificación del CSV: utf-8, windows-1252, iso-8859-1")
	dryRun := flag.Bool("dry-run", false, "solo valida el archivo, no escribe en la base de datos")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Uso: seed [-encoding windows-1252] [-dry-run] productos.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	products, rejected, err := parseCatalog(f, *encoding)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	for _, r := range rejected {
		log.Warn().Int("line", r.Line).Err(r.Err).Msg("fila descartada")
	}
	log.Info().Int("valid", len(products)).Int("rejected", len(rejected)).Msg("CSV leído")
	if *dryRun {
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if _, err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	// Sin almacenamiento ni feed: el seed solo inserta filas.
	uc := usecase.NewProductUseCase(postgres.NewProductRepository(pool), nil, nil, log.Zerolog())
	created := 0
	for _, p := range products {
		if _, err := uc.Create(ctx, "", p); err != nil {
			log.Error().Err(err).Str("name", p.Name).Msg("crear producto")
			continue
		}
		created++
	}
	log.Info().Int("created", created).Msg("seed terminado")
}

// decoderFor envuelve r con el decodificador de la codificación indicada.
func decoderFor(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %q", encoding)
	}
}

// parseCatalog lee el CSV completo. Las filas inválidas se devuelven aparte y no detienen la lectura.
func parseCatalog(r io.Reader, encoding string) ([]dto.CreateProductRequest, []rowError, error) {
	in, err := decoderFor(r, encoding)
	if err != nil {
		return nil, nil, err
	}
	cr := csv.NewReader(in)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("cabecera: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, nil, err
	}

	var (
		out      []dto.CreateProductRequest
		rejected []rowError
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("línea %d: %w", line, err)
		}
		p, err := toProduct(rec, idx)
		if err != nil {
			rejected = append(rejected, rowError{Line: line, Err: err})
			continue
		}
		out = append(out, p)
	}
	return out, rejected, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range columns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}
	return idx, nil
}

func toProduct(rec []string, idx map[string]int) (dto.CreateProductRequest, error) {
	get := func(col string) string {
		i := idx[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var p dto.CreateProductRequest
	p.Name = get("name")
	if p.Name == "" {
		return p, errors.New("name vacío")
	}
	p.Category = get("category")
	if p.Category == "" {
		return p, errors.New("category vacía")
	}

	// Los precios vienen en rupiah con separador de miles: "4.500.000" o "4,500,000".
	rawPrice := strings.NewReplacer(".", "", ",", "", "Rp", "", " ", "").Replace(get("price"))
	price, err := decimal.NewFromString(rawPrice)
	if err != nil || price.IsNegative() {
		return p, fmt.Errorf("price inválido: %q", get("price"))
	}
	p.Price = price

	if s := get("stock"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return p, fmt.Errorf("stock inválido: %q", s)
		}
		p.Stock = n
	}

	switch strings.ToLower(get("condition")) {
	case "baru", "new":
		p.Condition = "Baru"
	case "bekas", "used", "second":
		p.Condition = "Bekas"
	default:
		return p, fmt.Errorf("condition inválida: %q", get("condition"))
	}
	p.Description = get("description")
	return p, nil
}
