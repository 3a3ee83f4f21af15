package service

import "pinklegion-contracts/domain"

// bankDirectory is the curated directory of Portuguese bank codes. It is
// loaded once and never mutated; lookups go through bankByCode. The codes are
// the 4 digits at positions 5-8 of a PT IBAN.
var bankDirectory = []domain.BankDirectoryEntry{
	// 0002 is the legacy Totta code still present on older accounts; it
	// shares Santander Totta's BIC.
	{Code: "0002", Name: "Banco Santander Totta", BIC: "TOTAPTPL"},
	{Code: "0007", Name: "Novo Banco", BIC: "BESCPTPL"},
	{Code: "0008", Name: "Banco BAI Europa", BIC: "BAIPPTPL"},
	{Code: "0010", Name: "Banco BPI", BIC: "BBPIPTPL"},
	{Code: "0018", Name: "Banco Santander Totta", BIC: "TOTAPTPL"},
	{Code: "0019", Name: "Banco BIC Português (EuroBic)", BIC: "BPNPPTPL"},
	{Code: "0023", Name: "ActivoBank", BIC: "ACTVPTPL"},
	{Code: "0033", Name: "Banco Comercial Português (Millennium bcp)", BIC: "BCOMPTPL"},
	{Code: "0035", Name: "Caixa Geral de Depósitos", BIC: "CGDIPTPL"},
	{Code: "0036", Name: "Banco Montepio", BIC: "MPIOPTPL"},
	{Code: "0038", Name: "Banif - Banco Internacional do Funchal", BIC: "BNIFPTPL"},
	{Code: "0045", Name: "Caixa Central de Crédito Agrícola Mútuo", BIC: "CCCMPTPL"},
	{Code: "0061", Name: "Banco de Investimento Global (BiG)", BIC: "BDIGPTPL"},
	{Code: "0065", Name: "Banco Best", BIC: "BESZPTPL"},
	{Code: "0170", Name: "Abanca", BIC: "CAGLPTPL"},
	{Code: "0193", Name: "Banco CTT", BIC: "CTTVPTPL"},
	{Code: "0269", Name: "Bankinter", BIC: "BKBKPTPL"},
	{Code: "0781", Name: "Agência de Gestão da Tesouraria e da Dívida Pública (IGCP)", BIC: "IGCPPTPL"},
}

var bankByCode = func() map[string]domain.BankDirectoryEntry {
	m := make(map[string]domain.BankDirectoryEntry, len(bankDirectory))
	for _, entry := range bankDirectory {
		m[entry.Code] = entry
	}
	return m
}()
