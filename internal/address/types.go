package address

type GenerateMappingInput struct {
	OutputPath string
}

type GenerateMappingOutput struct {
	OutputPath   string
	AddressCount int
}
