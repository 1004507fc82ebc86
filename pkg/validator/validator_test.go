package validator

import (
	"errors"
	"net/http"
	"testing"

	"go-catalog-ms/pkg/rpcerr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type scheduleInput struct {
	ProductID uuid.UUID `validate:"uuid_required"`
	StartTime string    `validate:"required,clock"`
	DayOfWeek int       `validate:"min=0,max=6"`
}

func TestValidateStruct(t *testing.T) {
	ok := scheduleInput{ProductID: uuid.New(), StartTime: "08:30", DayOfWeek: 6}
	require.Empty(t, ValidateStruct(ok))

	bad := scheduleInput{ProductID: uuid.Nil, StartTime: "24:10", DayOfWeek: 7}
	errs := ValidateStruct(bad)
	require.Len(t, errs, 3)
	require.Equal(t, "scheduleInput.ProductID", errs[0].FailedField)
	require.Equal(t, "uuid_required", errs[0].Tag)
	require.Equal(t, "clock", errs[1].Tag)
	require.Equal(t, "max", errs[2].Tag)
	require.Equal(t, "6", errs[2].Value)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(scheduleInput{ProductID: uuid.New(), StartTime: "23:59"}))

	err := Validate(scheduleInput{ProductID: uuid.New(), StartTime: "7:5"})
	var rpcErr *rpcerr.Error
	require.True(t, errors.As(err, &rpcErr))
	require.Equal(t, http.StatusBadRequest, rpcErr.Status)
	require.Equal(t, "Validation failed: Field 'scheduleInput.StartTime' failed on tag 'clock'", rpcErr.Message)
}
