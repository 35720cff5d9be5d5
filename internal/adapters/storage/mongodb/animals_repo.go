package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"livestock-records/internal/adapters/storage/herdview"
	"livestock-records/internal/domain/animals"
	"livestock-records/internal/lifecycle"
)

var timeNow = time.Now

type animalDoc struct {
	ID              string     `bson:"_id"`
	Code            string     `bson:"codigo_animal"`
	EarTag          string     `bson:"arete_numero,omitempty"`
	RFID            string     `bson:"chip_rfid,omitempty"`
	Alias           string     `bson:"alias"`
	Sex             string     `bson:"sexo"`
	BirthDate       time.Time  `bson:"fecha_nacimiento"`
	Breed           string     `bson:"raza,omitempty"`
	Color           string     `bson:"color,omitempty"`
	InitialWeightKg float64    `bson:"peso_inicial"`
	Status          string     `bson:"estado"`
	DischargeDate   *time.Time `bson:"fecha_baja,omitempty"`
	DischargeReason string     `bson:"motivo_baja,omitempty"`
	MotherID        *string    `bson:"id_madre,omitempty"`
	FatherID        *string    `bson:"id_padre,omitempty"`
	BirthPlace      string     `bson:"lugar_nacimiento,omitempty"`
	Origin          string     `bson:"procedencia,omitempty"`
	FarmID          *string    `bson:"id_finca,omitempty"`
	FarmName        string     `bson:"nombre_finca,omitempty"`

	// Derivados cargados por otro proceso; si faltan se completan al leer.
	Stage        string   `bson:"etapa_actual,omitempty"`
	AgeMonths    float64  `bson:"edad_en_meses,omitempty"`
	LastWeightKg *float64 `bson:"ultimo_peso,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
}

type AnimalsRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.coll.InsertOne(ctx, toAnimalDoc(a))
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", animals.ErrDuplicateCode, a.Code)
	}
	if err != nil {
		return fmt.Errorf("failed to insert animal: %w", err)
	}
	return nil
}

// CreateMany no usa transacciones (requieren replica set): si InsertMany falla
// a mitad de camino, borra lo que alcanzó a insertar.
func (r *AnimalsRepo) CreateMany(ctx context.Context, as []animals.Animal) error {
	docs := make([]any, 0, len(as))
	ids := make([]string, 0, len(as))
	for _, a := range as {
		docs = append(docs, toAnimalDoc(a))
		ids = append(ids, a.ID)
	}

	_, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err == nil {
		return nil
	}

	if _, derr := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); derr != nil {
		return errors.Join(err, fmt.Errorf("failed to roll back bulk insert: %w", derr))
	}
	if mongo.IsDuplicateKeyError(err) {
		return animals.ErrDuplicateCode
	}
	return fmt.Errorf("failed to insert animals: %w", err)
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	var doc animalDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return animals.Animal{}, animals.ErrNotFound
	}
	if err != nil {
		return animals.Animal{}, fmt.Errorf("failed to find animal: %w", err)
	}
	return herdview.Complete(doc.toAnimal(), r.now()), nil
}

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	return r.find(ctx, bson.M{}, func(animals.Animal) bool { return true })
}

// ListAlive filtra estado en la base; etapa y edad después de completar los derivados.
func (r *AnimalsRepo) ListAlive(ctx context.Context, f animals.ListFilter) ([]animals.Animal, error) {
	return r.find(ctx, bson.M{"estado": string(animals.StatusAlive)}, f.Matches)
}

func (r *AnimalsRepo) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count animals: %w", err)
	}
	return int(n), nil
}

func (r *AnimalsRepo) find(ctx context.Context, filter bson.M, keep func(animals.Animal) bool) ([]animals.Animal, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list animals: %w", err)
	}
	defer cur.Close(ctx)

	today := r.now()
	out := make([]animals.Animal, 0)
	for cur.Next(ctx) {
		var doc animalDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode animal: %w", err)
		}
		a := herdview.Complete(doc.toAnimal(), today)
		if keep(a) {
			out = append(out, a)
		}
	}
	return out, cur.Err()
}

func toAnimalDoc(a animals.Animal) animalDoc {
	return animalDoc{
		ID:              a.ID,
		Code:            a.Code,
		EarTag:          a.EarTag,
		RFID:            a.RFID,
		Alias:           a.Alias,
		Sex:             string(a.Sex),
		BirthDate:       a.BirthDate,
		Breed:           a.Breed,
		Color:           a.Color,
		InitialWeightKg: a.InitialWeightKg,
		Status:          string(a.Status),
		DischargeDate:   a.DischargeDate,
		DischargeReason: a.DischargeReason,
		MotherID:        a.MotherID,
		FatherID:        a.FatherID,
		BirthPlace:      a.BirthPlace,
		Origin:          a.Origin,
		FarmID:          a.FarmID,
		FarmName:        a.FarmName,
		Stage:           string(a.Stage),
		AgeMonths:       a.AgeMonths,
		LastWeightKg:    a.LastWeightKg,
		CreatedAt:       a.CreatedAt,
	}
}

func (d animalDoc) toAnimal() animals.Animal {
	return animals.Animal{
		ID:              d.ID,
		Code:            d.Code,
		EarTag:          d.EarTag,
		RFID:            d.RFID,
		Alias:           d.Alias,
		Sex:             lifecycle.Sex(d.Sex),
		BirthDate:       d.BirthDate.UTC(),
		Breed:           d.Breed,
		Color:           d.Color,
		InitialWeightKg: d.InitialWeightKg,
		Status:          animals.Status(d.Status),
		DischargeDate:   d.DischargeDate,
		DischargeReason: d.DischargeReason,
		MotherID:        d.MotherID,
		FatherID:        d.FatherID,
		BirthPlace:      d.BirthPlace,
		Origin:          d.Origin,
		FarmID:          d.FarmID,
		FarmName:        d.FarmName,
		Stage:           lifecycle.Stage(d.Stage),
		AgeMonths:       d.AgeMonths,
		LastWeightKg:    d.LastWeightKg,
		CreatedAt:       d.CreatedAt,
	}
}
