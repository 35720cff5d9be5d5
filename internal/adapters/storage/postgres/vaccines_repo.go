package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"livestock-records/internal/domain/animals"
	"livestock-records/internal/domain/vaccines"
)

type VaccinesRepo struct {
	db *sql.DB
}

func NewVaccinesRepo(db *sql.DB) *VaccinesRepo {
	return &VaccinesRepo{db: db}
}

func (r *VaccinesRepo) ListVaccines(ctx context.Context) ([]vaccines.Vaccine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id_vacuna, nombre, COALESCE(descripcion, ''), created_at
		FROM vacuna
		ORDER BY nombre
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccines.Vaccine, 0)
	for rows.Next() {
		var v vaccines.Vaccine
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VaccinesRepo) CreateVaccine(ctx context.Context, v vaccines.Vaccine) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vacuna (id_vacuna, nombre, descripcion, created_at)
		VALUES ($1,$2,$3,$4)
	`, v.ID, v.Name, nullString(v.Description), v.CreatedAt)
	return err
}

func (r *VaccinesRepo) GetVaccine(ctx context.Context, id string) (vaccines.Vaccine, error) {
	var v vaccines.Vaccine
	err := r.db.QueryRowContext(ctx, `
		SELECT id_vacuna, nombre, COALESCE(descripcion, ''), created_at
		FROM vacuna
		WHERE id_vacuna = $1
	`, strings.TrimSpace(id)).Scan(&v.ID, &v.Name, &v.Description, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vaccines.Vaccine{}, vaccines.ErrVaccineNotFound
		}
		return vaccines.Vaccine{}, err
	}
	return v, nil
}

func (r *VaccinesRepo) CreateApplication(ctx context.Context, a vaccines.Application) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vacunas_animales (
			id_vacuna_animal, id_animal, id_vacuna,
			fecha_aplicacion, proxima_dosis, created_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		a.ID,
		a.AnimalID,
		a.VaccineID,
		a.AppliedOn,
		toNullDate(a.NextDoseOn),
		a.CreatedAt,
	)
	return err
}

const selectApplication = `
	SELECT
		va.id_vacuna_animal, va.id_animal, va.id_vacuna,
		va.fecha_aplicacion, va.proxima_dosis, va.created_at,
		a.codigo_animal, a.alias, a.estado,
		v.nombre, COALESCE(v.descripcion, '')
	FROM vacunas_animales va
	INNER JOIN animal a ON a.id_animal = va.id_animal
	INNER JOIN vacuna v ON v.id_vacuna = va.id_vacuna
`

func (r *VaccinesRepo) GetApplication(ctx context.Context, id string) (vaccines.Application, error) {
	row := r.db.QueryRowContext(ctx, selectApplication+` WHERE va.id_vacuna_animal = $1`, strings.TrimSpace(id))
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vaccines.Application{}, vaccines.ErrNotFound
		}
		return vaccines.Application{}, err
	}
	return a, nil
}

// ListApplications no ordena: el orden por próxima dosis o por fecha lo decide el servicio.
func (r *VaccinesRepo) ListApplications(ctx context.Context, f vaccines.ApplicationFilter) ([]vaccines.Application, error) {
	sb := strings.Builder{}
	sb.WriteString(selectApplication)
	sb.WriteString(" WHERE 1=1")

	args := []any{}
	if id := strings.TrimSpace(f.AnimalID); id != "" {
		args = append(args, id)
		sb.WriteString(fmt.Sprintf(" AND va.id_animal = $%d", len(args)))
	}
	if f.AliveOnly {
		sb.WriteString(" AND a.estado = 'VIVO'")
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccines.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *VaccinesRepo) UpdateApplication(ctx context.Context, a vaccines.Application) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vacunas_animales
		SET fecha_aplicacion = $2, proxima_dosis = $3
		WHERE id_vacuna_animal = $1
	`, a.ID, a.AppliedOn, toNullDate(a.NextDoseOn))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vaccines.ErrNotFound
	}
	return nil
}

func (r *VaccinesRepo) DeleteApplication(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vacunas_animales WHERE id_vacuna_animal = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vaccines.ErrNotFound
	}
	return nil
}

func scanApplication(s scanner) (vaccines.Application, error) {
	var (
		a      vaccines.Application
		next   sql.NullTime
		status string
	)
	if err := s.Scan(
		&a.ID,
		&a.AnimalID,
		&a.VaccineID,
		&a.AppliedOn,
		&next,
		&a.CreatedAt,
		&a.AnimalCode,
		&a.AnimalAlias,
		&status,
		&a.VaccineName,
		&a.VaccineDescription,
	); err != nil {
		return vaccines.Application{}, err
	}
	if next.Valid {
		t := next.Time
		a.NextDoseOn = &t
	}
	a.AnimalStatus = animals.Status(status)
	return a, nil
}
