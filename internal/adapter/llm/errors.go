package llm

import (
	"context"
	"errors"
	"net"
	"net/url"

	"edugen/internal/domain"
)

// classifyTransportError maps a provider error onto the generation taxonomy.
// Anything that never produced an HTTP response counts as a network failure.
func classifyTransportError(err error) *domain.GenerationError {
	if err == nil {
		return nil
	}
	var genErr *domain.GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.NewGenerationError(domain.GenerationNetwork, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return domain.NewGenerationError(domain.GenerationNetwork, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return domain.NewGenerationError(domain.GenerationNetwork, err)
	}
	return domain.NewGenerationError(domain.GenerationUpstream, err)
}
