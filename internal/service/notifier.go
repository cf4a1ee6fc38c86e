package service

import (
	"context"
	"encoding/json"
	"time"

	"therapy-booking/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Queue names consumed by the notification worker. Email rendering and
// delivery live in that worker, not in this service.
const (
	QueueUserRegistered    = "notification.user_registered"
	QueueAppointmentBooked = "notification.appointment_booked"
)

// UserRegisteredEvent is published after a successful patient registration.
// The verification token lets the worker build the verify-email link.
type UserRegisteredEvent struct {
	UserID            string    `json:"user_id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	Role              string    `json:"role"`
	VerificationToken string    `json:"verification_token"`
	RegisteredAt      time.Time `json:"registered_at"`
}

// AppointmentBookedEvent is published after a booking is created so both
// parties can be notified.
type AppointmentBookedEvent struct {
	AppointmentID  string    `json:"appointment_id"`
	PatientEmail   string    `json:"patient_email"`
	TherapistEmail string    `json:"therapist_email"`
	DateTime       time.Time `json:"date_time"`
	Duration       int       `json:"duration"`
	Price          string    `json:"price"`
	BookedAt       time.Time `json:"booked_at"`
}

// Notifier publishes notification events. Implementations must tolerate
// broker outages: callers log failures and continue the request.
type Notifier interface {
	PublishUserRegistered(ctx context.Context, event *UserRegisteredEvent) error
	PublishAppointmentBooked(ctx context.Context, event *AppointmentBookedEvent) error
}

type amqpNotifier struct {
	url string
	log *logrus.Logger
}

func NewAMQPNotifier(cfg config.AMQPConfig, log *logrus.Logger) Notifier {
	return &amqpNotifier{
		url: cfg.URL,
		log: log,
	}
}

func (n *amqpNotifier) PublishUserRegistered(ctx context.Context, event *UserRegisteredEvent) error {
	return n.publish(ctx, QueueUserRegistered, event)
}

func (n *amqpNotifier) PublishAppointmentBooked(ctx context.Context, event *AppointmentBookedEvent) error {
	return n.publish(ctx, QueueAppointmentBooked, event)
}

// publish declares the durable queue and sends one persistent JSON message.
// A connection per publish keeps the service stateless; notification volume
// does not justify a channel pool.
func (n *amqpNotifier) publish(ctx context.Context, queue string, payload interface{}) error {
	conn, err := amqp.Dial(n.url)
	if err != nil {
		n.log.Warnf("Failed to dial AMQP broker: %+v", err)
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		n.log.Warnf("Failed to open AMQP channel: %+v", err)
		return err
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		n.log.Warnf("Failed to declare queue %s: %+v", queue, err)
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		n.log.Warnf("Failed to marshal event for queue %s: %+v", queue, err)
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key = queue name
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		n.log.Warnf("Failed to publish to queue %s: %+v", queue, err)
		return err
	}

	return nil
}
