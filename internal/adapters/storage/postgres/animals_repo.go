package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"livestock-records/internal/domain/animals"
	"livestock-records/internal/lifecycle"
)

// uniqueViolation es el SQLSTATE de Postgres para claves duplicadas.
const uniqueViolation = "23505"

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const insertAnimal = `
	INSERT INTO animal (
		id_animal, codigo_animal, arete_numero, chip_rfid, alias,
		sexo, fecha_nacimiento, raza, color,
		peso_inicial, estado,
		fecha_baja, motivo_baja,
		id_madre, id_padre, lugar_nacimiento,
		procedencia, id_finca, created_at
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
`

// Etapa, edad y último peso salen de la vista; nunca se calculan aquí.
const selectAnimal = `
	SELECT
		a.id_animal, a.codigo_animal,
		COALESCE(a.arete_numero, ''), COALESCE(a.chip_rfid, ''), a.alias,
		a.sexo, a.fecha_nacimiento,
		COALESCE(a.raza, ''), COALESCE(a.color, ''),
		a.peso_inicial, a.estado,
		a.fecha_baja, COALESCE(a.motivo_baja, ''),
		a.id_madre, a.id_padre,
		COALESCE(a.lugar_nacimiento, ''), COALESCE(a.procedencia, ''),
		a.id_finca, COALESCE(v.nombre_finca, ''),
		COALESCE(v.etapa_actual, ''), COALESCE(v.edad_en_meses, 0), v.ultimo_peso,
		a.created_at
	FROM animal a
	LEFT JOIN vista_animal_completa v ON v.id_animal = a.id_animal
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	return insert(ctx, r.db, a)
}

// CreateMany usa una transacción: si una fila falla, no queda ninguna.
func (r *AnimalsRepo) CreateMany(ctx context.Context, as []animals.Animal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, a := range as {
		if err := insert(ctx, tx, a); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func insert(ctx context.Context, db execer, a animals.Animal) error {
	_, err := db.ExecContext(ctx, insertAnimal,
		a.ID,
		a.Code,
		nullString(a.EarTag),
		nullString(a.RFID),
		a.Alias,
		string(a.Sex),
		a.BirthDate,
		nullString(a.Breed),
		nullString(a.Color),
		a.InitialWeightKg,
		string(a.Status),
		toNullDate(a.DischargeDate),
		nullString(a.DischargeReason),
		a.MotherID,
		a.FatherID,
		nullString(a.BirthPlace),
		nullString(a.Origin),
		a.FarmID,
		a.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", animals.ErrDuplicateCode, a.Code)
	}
	return err
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, selectAnimal+` WHERE a.id_animal = $1`, id)
	a, err := scanAnimal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	return r.query(ctx, selectAnimal+` ORDER BY a.created_at ASC`)
}

func (r *AnimalsRepo) ListAlive(ctx context.Context, f animals.ListFilter) ([]animals.Animal, error) {
	sb := strings.Builder{}
	sb.WriteString(selectAnimal)
	sb.WriteString(" WHERE a.estado = 'VIVO'")

	args := []any{}
	argN := 1

	if f.Stage != nil {
		sb.WriteString(fmt.Sprintf(" AND v.etapa_actual = $%d", argN))
		args = append(args, string(*f.Stage))
		argN++
	}
	if f.MinAge != nil && f.MaxAge != nil {
		sb.WriteString(fmt.Sprintf(" AND v.edad_en_meses BETWEEN $%d AND $%d", argN, argN+1))
		args = append(args, *f.MinAge, *f.MaxAge)
		argN += 2
	} else if f.MinAge != nil {
		sb.WriteString(fmt.Sprintf(" AND v.edad_en_meses >= $%d", argN))
		args = append(args, *f.MinAge)
		argN++
	} else if f.MaxAge != nil {
		sb.WriteString(fmt.Sprintf(" AND v.edad_en_meses <= $%d", argN))
		args = append(args, *f.MaxAge)
		argN++
	}

	return r.query(ctx, sb.String(), args...)
}

func (r *AnimalsRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM animal`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *AnimalsRepo) query(ctx context.Context, q string, args ...any) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnimal(s scanner) (animals.Animal, error) {
	var (
		a                  animals.Animal
		sex, status, stage string
		discharge          sql.NullTime
		mother, father     sql.NullString
		farm               sql.NullString
		lastWeight         sql.NullFloat64
	)
	if err := s.Scan(
		&a.ID,
		&a.Code,
		&a.EarTag,
		&a.RFID,
		&a.Alias,
		&sex,
		&a.BirthDate,
		&a.Breed,
		&a.Color,
		&a.InitialWeightKg,
		&status,
		&discharge,
		&a.DischargeReason,
		&mother,
		&father,
		&a.BirthPlace,
		&a.Origin,
		&farm,
		&a.FarmName,
		&stage,
		&a.AgeMonths,
		&lastWeight,
		&a.CreatedAt,
	); err != nil {
		return animals.Animal{}, err
	}

	a.Sex = lifecycle.Sex(sex)
	a.Status = animals.Status(status)
	a.Stage = lifecycle.Stage(stage)
	if discharge.Valid {
		t := discharge.Time
		a.DischargeDate = &t
	}
	a.MotherID = fromNullString(mother)
	a.FatherID = fromNullString(father)
	a.FarmID = fromNullString(farm)
	if lastWeight.Valid {
		w := lastWeight.Float64
		a.LastWeightKg = &w
	}
	return a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
