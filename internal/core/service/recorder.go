package service

import (
	"github.com/thehex/board/internal/core/domain"
	"github.com/thehex/board/internal/core/ports"
)

type discardRecorder struct{}

func (discardRecorder) Record(domain.Activity) {}

func recorderOrDiscard(r ports.ActivityRecorder) ports.ActivityRecorder {
	if r == nil {
		return discardRecorder{}
	}
	return r
}
