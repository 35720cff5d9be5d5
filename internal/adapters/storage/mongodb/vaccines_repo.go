package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"livestock-records/internal/domain/animals"
	"livestock-records/internal/domain/vaccines"
)

type vaccineDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"nombre"`
	Description string    `bson:"descripcion,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
}

type applicationDoc struct {
	ID         string     `bson:"_id"`
	AnimalID   string     `bson:"id_animal"`
	VaccineID  string     `bson:"id_vacuna"`
	AppliedOn  time.Time  `bson:"fecha_aplicacion"`
	NextDoseOn *time.Time `bson:"proxima_dosis"`
	CreatedAt  time.Time  `bson:"created_at"`
}

// applicationRow es el resultado del pipeline con $lookup.
type applicationRow struct {
	applicationDoc `bson:",inline"`
	Animal         animalDoc  `bson:"animal"`
	Vaccine        vaccineDoc `bson:"vacuna"`
}

type VaccinesRepo struct {
	vaccines *mongo.Collection
	apps     *mongo.Collection
}

func (r *VaccinesRepo) ListVaccines(ctx context.Context) ([]vaccines.Vaccine, error) {
	cur, err := r.vaccines.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list vaccines: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]vaccines.Vaccine, 0)
	for cur.Next(ctx) {
		var d vaccineDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode vaccine: %w", err)
		}
		out = append(out, d.toVaccine())
	}
	return out, cur.Err()
}

func (r *VaccinesRepo) CreateVaccine(ctx context.Context, v vaccines.Vaccine) error {
	_, err := r.vaccines.InsertOne(ctx, vaccineDoc{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		CreatedAt:   v.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to insert vaccine: %w", err)
	}
	return nil
}

func (r *VaccinesRepo) GetVaccine(ctx context.Context, id string) (vaccines.Vaccine, error) {
	var d vaccineDoc
	err := r.vaccines.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return vaccines.Vaccine{}, vaccines.ErrVaccineNotFound
	}
	if err != nil {
		return vaccines.Vaccine{}, fmt.Errorf("failed to find vaccine: %w", err)
	}
	return d.toVaccine(), nil
}

func (r *VaccinesRepo) CreateApplication(ctx context.Context, a vaccines.Application) error {
	_, err := r.apps.InsertOne(ctx, applicationDoc{
		ID:         a.ID,
		AnimalID:   a.AnimalID,
		VaccineID:  a.VaccineID,
		AppliedOn:  a.AppliedOn,
		NextDoseOn: a.NextDoseOn,
		CreatedAt:  a.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to insert vaccine application: %w", err)
	}
	return nil
}

func (r *VaccinesRepo) GetApplication(ctx context.Context, id string) (vaccines.Application, error) {
	rows, err := r.aggregate(ctx, bson.M{"_id": id}, false)
	if err != nil {
		return vaccines.Application{}, err
	}
	if len(rows) == 0 {
		return vaccines.Application{}, vaccines.ErrNotFound
	}
	return rows[0], nil
}

func (r *VaccinesRepo) ListApplications(ctx context.Context, f vaccines.ApplicationFilter) ([]vaccines.Application, error) {
	match := bson.M{}
	if f.AnimalID != "" {
		match["id_animal"] = f.AnimalID
	}
	return r.aggregate(ctx, match, f.AliveOnly)
}

func (r *VaccinesRepo) UpdateApplication(ctx context.Context, a vaccines.Application) error {
	res, err := r.apps.UpdateOne(ctx, bson.M{"_id": a.ID}, bson.M{"$set": bson.M{
		"fecha_aplicacion": a.AppliedOn,
		"proxima_dosis":    a.NextDoseOn,
	}})
	if err != nil {
		return fmt.Errorf("failed to update vaccine application: %w", err)
	}
	if res.MatchedCount == 0 {
		return vaccines.ErrNotFound
	}
	return nil
}

func (r *VaccinesRepo) DeleteApplication(ctx context.Context, id string) error {
	res, err := r.apps.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vaccine application: %w", err)
	}
	if res.DeletedCount == 0 {
		return vaccines.ErrNotFound
	}
	return nil
}

// aggregate une animal y vacuna con $lookup; $unwind descarta huérfanos como un INNER JOIN.
func (r *VaccinesRepo) aggregate(ctx context.Context, match bson.M, aliveOnly bool) ([]vaccines.Application, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: animalsColl},
			{Key: "localField", Value: "id_animal"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "animal"},
		}}},
		{{Key: "$unwind", Value: "$animal"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: vaccinesColl},
			{Key: "localField", Value: "id_vacuna"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "vacuna"},
		}}},
		{{Key: "$unwind", Value: "$vacuna"}},
	}
	if aliveOnly {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"animal.estado": string(animals.StatusAlive)}}})
	}

	cur, err := r.apps.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate vaccine applications: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]vaccines.Application, 0)
	for cur.Next(ctx) {
		var row applicationRow
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode vaccine application: %w", err)
		}
		out = append(out, row.toApplication())
	}
	return out, cur.Err()
}

func (d vaccineDoc) toVaccine() vaccines.Vaccine {
	return vaccines.Vaccine{ID: d.ID, Name: d.Name, Description: d.Description, CreatedAt: d.CreatedAt}
}

func (row applicationRow) toApplication() vaccines.Application {
	a := vaccines.Application{
		ID:                 row.ID,
		AnimalID:           row.AnimalID,
		VaccineID:          row.VaccineID,
		AppliedOn:          row.AppliedOn.UTC(),
		CreatedAt:          row.CreatedAt,
		AnimalCode:         row.Animal.Code,
		AnimalAlias:        row.Animal.Alias,
		AnimalStatus:       animals.Status(row.Animal.Status),
		VaccineName:        row.Vaccine.Name,
		VaccineDescription: row.Vaccine.Description,
	}
	if row.NextDoseOn != nil {
		t := row.NextDoseOn.UTC()
		a.NextDoseOn = &t
	}
	return a
}
