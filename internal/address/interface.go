package address

import "context"

// UseCase produces the address mapping skeleton consumed by the frontend.
type UseCase interface {
	GenerateMapping(ctx context.Context, input GenerateMappingInput) (GenerateMappingOutput, error)
}
