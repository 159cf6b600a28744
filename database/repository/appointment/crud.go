package appointmentRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotwise/models"
)

func overlapFilter(start, end time.Time) bson.M {
	return bson.M{
		"start": bson.M{"$lt": end},
		"end":   bson.M{"$gt": start},
	}
}

func (r *MongoAppointmentRepo) IsFree(ctx context.Context, start, end time.Time) (bool, error) {
	if err := models.CheckInterval(start, end); err != nil {
		return false, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, overlapFilter(start, end), options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func (r *MongoAppointmentRepo) CreateAppointment(ctx context.Context, summary string, start, end time.Time) (*models.Appointment, error) {
	if err := models.CheckInterval(start, end); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	appt := models.Appointment{
		ID:        uuid.New().String(),
		Summary:   summary,
		Start:     start,
		End:       end,
		CreatedAt: r.now(),
	}
	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) ListBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, overlapFilter(from, to), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// Ping reports whether the MongoDB deployment is reachable.
func (r *MongoAppointmentRepo) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}
