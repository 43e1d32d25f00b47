package ledger

import (
	"fmt"
	"time"

	"github.com/shenikar/incident_dispatch/internal/models"
)

// transitions - допустимые переходы. resolved и cancelled терминальные.
var transitions = map[models.AssignmentStatus][]models.AssignmentStatus{
	models.AssignmentAssigned:   {models.AssignmentEnRoute, models.AssignmentCancelled},
	models.AssignmentEnRoute:    {models.AssignmentArrived, models.AssignmentCancelled},
	models.AssignmentArrived:    {models.AssignmentInProgress, models.AssignmentResolved, models.AssignmentCancelled},
	models.AssignmentInProgress: {models.AssignmentResolved, models.AssignmentCancelled},
}

// CanTransition сообщает, разрешен ли переход from -> to
func CanTransition(from, to models.AssignmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Outcome - результат применения перехода
type Outcome struct {
	OldStatus models.AssignmentStatus
	NewStatus models.AssignmentStatus
	// Changed - статус действительно изменился
	Changed bool
	// FirstResolution - назначение закрыто впервые, нужно распространить решение на инцидент и автора
	FirstResolution bool
}

// Apply переводит назначение в новый статус и проставляет метки времени.
// Повторный запрос того же статуса ничего не меняет. При ошибке назначение не изменяется.
func Apply(a *models.Assignment, to models.AssignmentStatus, at time.Time) (Outcome, error) {
	out := Outcome{OldStatus: a.Status, NewStatus: a.Status}

	if a.Status == to {
		return out, nil
	}
	if !CanTransition(a.Status, to) {
		return out, fmt.Errorf("%w: cannot move from %s to %s", models.ErrInvalidTransition, a.Status, to)
	}

	a.Status = to
	a.UpdatedAt = at
	out.NewStatus = to
	out.Changed = true

	switch to {
	case models.AssignmentArrived:
		if a.ArrivedAt == nil {
			stamp := at
			a.ArrivedAt = &stamp
		}
	case models.AssignmentResolved:
		if a.ResolvedAt == nil {
			stamp := at
			a.ResolvedAt = &stamp
			out.FirstResolution = true
		}
	}
	return out, nil
}

// StatusChangeMessage - текст записи хроники о смене статуса
func StatusChangeMessage(from, to models.AssignmentStatus, actor string) string {
	return fmt.Sprintf("Assignment status changed from %s to %s by %s", from, to, actor)
}

// NoteMessage - текст записи хроники о заметке
func NoteMessage(notes string) string {
	return fmt.Sprintf("Note added: %s", notes)
}
