package herd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"herdflow/animal"
)

var ErrNotFound = errors.New("herd: animal not found")

// Repository is the persistence surface for animal records. It is a
// superset of the lifecycle engine's Store interface.
type Repository interface {
	Create(ctx context.Context, a animal.Animal) (animal.Animal, error)
	GetByID(ctx context.Context, id string) (animal.Animal, error)
	List(ctx context.Context, filters Filters) ([]animal.Animal, int, error)
	FindByID(ctx context.Context, id string) (animal.Animal, bool, error)
	FindByPriorityBelow(ctx context.Context, p animal.Priority) ([]animal.Animal, error)
	Save(ctx context.Context, a animal.Animal) error
	UnsoldCountByPriority(ctx context.Context) (map[animal.Priority]int, error)
}

// Filters narrows List results. Zero values mean "no filter".
type Filters struct {
	Category   animal.Category
	SaleStatus animal.SaleStatus
	TestResult animal.TestResult
	Page       int
	PageSize   int
}

type PGRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const animalColumns = `id, tag_number, sex, birth_date, role, pregnancy_status, insemination_date,
	category, test_result, destination, test_date, sale_status, sale_price, sale_date, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, a animal.Animal) (animal.Animal, error) {
	query := `
		INSERT INTO animals (id, tag_number, sex, birth_date, role, pregnancy_status, insemination_date,
			category, test_result, destination, test_date, sale_status, sale_price, sale_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + animalColumns

	row := r.pool.QueryRow(ctx, query,
		a.ID,
		a.TagNumber,
		a.Sex,
		a.BirthDate,
		a.Role,
		a.PregnancyStatus,
		a.InseminationDate,
		a.Category,
		a.TestResult,
		a.Destination,
		a.TestDate,
		a.SaleStatus,
		a.SalePrice,
		a.SaleDate,
	)

	created, err := scanAnimal(row)
	if err != nil {
		return animal.Animal{}, fmt.Errorf("herd: create animal: %w", err)
	}
	return created, nil
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (animal.Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animals WHERE id = $1`

	a, err := scanAnimal(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return animal.Animal{}, ErrNotFound
		}
		return animal.Animal{}, fmt.Errorf("herd: get animal: %w", err)
	}
	return a, nil
}

// FindByID adapts GetByID to the lifecycle Store contract, where absence is
// a boolean rather than an error.
func (r *PGRepository) FindByID(ctx context.Context, id string) (animal.Animal, bool, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return animal.Animal{}, false, nil
		}
		return animal.Animal{}, false, err
	}
	return a, true, nil
}

func (r *PGRepository) List(ctx context.Context, filters Filters) ([]animal.Animal, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 || filters.PageSize > 100 {
		filters.PageSize = 20
	}

	where := []string{"1=1"}
	args := []any{}

	if filters.Category != "" {
		where = append(where, fmt.Sprintf("category=$%d", len(args)+1))
		args = append(args, filters.Category)
	}
	if filters.SaleStatus != "" {
		where = append(where, fmt.Sprintf("sale_status=$%d", len(args)+1))
		args = append(args, filters.SaleStatus)
	}
	if filters.TestResult != "" {
		where = append(where, fmt.Sprintf("test_result=$%d", len(args)+1))
		args = append(args, filters.TestResult)
	}

	whereClause := " WHERE " + strings.Join(where, " AND ")
	limit := filters.PageSize
	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`SELECT %s FROM animals%s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		animalColumns, whereClause, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("herd: query list: %w", err)
	}
	defer rows.Close()

	list := []animal.Animal{}
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("herd: scan animal: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("herd: iterate animals: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM animals%s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("herd: count list: %w", err)
	}

	return list, total, nil
}

// FindByPriorityBelow returns animals in categories whose sale priority is
// strictly lower than p. Priority is never stored; it is derived from the
// category column.
func (r *PGRepository) FindByPriorityBelow(ctx context.Context, p animal.Priority) ([]animal.Animal, error) {
	categories := categoriesBelow(p)
	if len(categories) == 0 {
		return nil, nil
	}

	query := `SELECT ` + animalColumns + ` FROM animals WHERE category = ANY($1)`

	rows, err := r.pool.Query(ctx, query, categories)
	if err != nil {
		return nil, fmt.Errorf("herd: query by priority: %w", err)
	}
	defer rows.Close()

	var out []animal.Animal
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, fmt.Errorf("herd: scan animal: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("herd: iterate animals: %w", err)
	}
	return out, nil
}

func (r *PGRepository) Save(ctx context.Context, a animal.Animal) error {
	const query = `
		UPDATE animals
		SET tag_number = $2,
		    sex = $3,
		    birth_date = $4,
		    role = $5,
		    pregnancy_status = $6,
		    insemination_date = $7,
		    category = $8,
		    test_result = $9,
		    destination = $10,
		    test_date = $11,
		    sale_status = $12,
		    sale_price = $13,
		    sale_date = $14,
		    updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		a.ID,
		a.TagNumber,
		a.Sex,
		a.BirthDate,
		a.Role,
		a.PregnancyStatus,
		a.InseminationDate,
		a.Category,
		a.TestResult,
		a.Destination,
		a.TestDate,
		a.SaleStatus,
		a.SalePrice,
		a.SaleDate,
	)
	if err != nil {
		return fmt.Errorf("herd: save animal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UnsoldCountByPriority aggregates unsold animals per sale tier, the one
// count the engine exposes to the dashboard.
func (r *PGRepository) UnsoldCountByPriority(ctx context.Context) (map[animal.Priority]int, error) {
	const query = `
		SELECT category, COUNT(*)
		FROM animals
		WHERE sale_status IN ('PENDING', 'READY_FOR_SALE')
		GROUP BY category
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("herd: count unsold: %w", err)
	}
	defer rows.Close()

	counts := make(map[animal.Priority]int)
	for rows.Next() {
		var category animal.Category
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("herd: scan count: %w", err)
		}
		counts[animal.PriorityFor(category)] += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("herd: iterate counts: %w", err)
	}
	return counts, nil
}

func categoriesBelow(p animal.Priority) []string {
	all := []animal.Category{
		animal.CategoryCow,
		animal.CategoryCalf,
		animal.CategoryHeifer,
		animal.CategoryPregnantHeifer,
		animal.CategoryInseminatedHeifer,
	}
	var out []string
	for _, c := range all {
		if animal.PriorityFor(c) < p {
			out = append(out, string(c))
		}
	}
	return out
}

func scanAnimal(row pgx.Row) (animal.Animal, error) {
	var a animal.Animal
	return a, row.Scan(
		&a.ID,
		&a.TagNumber,
		&a.Sex,
		&a.BirthDate,
		&a.Role,
		&a.PregnancyStatus,
		&a.InseminationDate,
		&a.Category,
		&a.TestResult,
		&a.Destination,
		&a.TestDate,
		&a.SaleStatus,
		&a.SalePrice,
		&a.SaleDate,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}
