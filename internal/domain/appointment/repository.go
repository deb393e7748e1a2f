package appointment

import (
	"context"
	"time"
)

// Repository define as operações de persistência de agendamentos
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	FindByID(ctx context.Context, tenantID, id string) (*Appointment, error)

	// List lista os agendamentos cujo início está em [from, to]; limites nulos são abertos
	List(ctx context.Context, tenantID string, from, to *time.Time) ([]*Appointment, error)

	// PendingReminders lista agendamentos com lembrete vencido até now e ainda não enviado
	PendingReminders(ctx context.Context, tenantID string, now time.Time) ([]*Appointment, error)

	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, tenantID, id string) error
}
