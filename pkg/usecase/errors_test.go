package usecase_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/gridcell/pkg/usecase"
)

func TestErrors_ErrorsAreDistinct(t *testing.T) {
	gt.Bool(t, errors.Is(usecase.ErrFieldNotFound, usecase.ErrFilterNotFound)).False()
	gt.Bool(t, errors.Is(usecase.ErrFilterNotFound, usecase.ErrFieldNotFound)).False()
}
