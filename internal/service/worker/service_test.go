package worker

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkerService(memory.NewWorkerRepository(), metrics.NewManager())

	contact := "  0812 3456 789 "
	created, err := svc.Create(ctx, worker.CreateWorkerRequest{Name: " Rina ", ContactNumber: &contact})
	require.NoError(t, err)
	assert.Equal(t, "Rina", created.Name)
	require.NotNil(t, created.ContactNumber)
	assert.Equal(t, "0812 3456 789", *created.ContactNumber)

	blank := "   "
	second, err := svc.Create(ctx, worker.CreateWorkerRequest{Name: "Tomas", ContactNumber: &blank})
	require.NoError(t, err)
	assert.Nil(t, second.ContactNumber)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestWorkerService_Create_Validation(t *testing.T) {
	svc := NewWorkerService(memory.NewWorkerRepository(), nil)

	bad := "call me"
	_, err := svc.Create(context.Background(), worker.CreateWorkerRequest{Name: "", ContactNumber: &bad})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "contact_number")
}
