package appointmentRepo

import (
	"context"
	"time"

	"slotwise/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRepository is a calendar kept in a local database. Appointments
// are half-open intervals; two appointments that only touch do not overlap.
type AppointmentRepository interface {
	IsFree(ctx context.Context, start, end time.Time) (bool, error)
	CreateAppointment(ctx context.Context, summary string, start, end time.Time) (*models.Appointment, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
}

// MongoAppointmentRepo keeps appointments in the "appointments" collection.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoAppointmentRepo constructs a MongoDB-backed AppointmentRepository.
func NewMongoAppointmentRepo(client *mongo.Client, dbName string) *MongoAppointmentRepo {
	return &MongoAppointmentRepo{
		coll: client.Database(dbName).Collection("appointments"),
		now:  time.Now,
	}
}
