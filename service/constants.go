package service

const (
	MaxContractAmount   = 10_000_000.0 // muito acima de qualquer carro do stand
	MaxInstallmentCount = 240          // 20 anos de mensalidades

	// Seller-side constants printed on every document. The stand is a single
	// legal entity, so these are fixed rather than configurable.
	SellerName    = "Pink Legion - Comércio de Automóveis, Unipessoal Lda."
	SellerNIF     = "514782390"
	SellerAddress = "Rua do Alecrim 124, 4400-218 Vila Nova de Gaia"
)
