package cpf

// Valido verifica os dígitos verificadores de um CPF (módulo 11). A API
// rejeita CPFs malformados antes de acionar o serviço externo.
func Valido(cpf string) bool {
	if len(cpf) != 11 {
		return false
	}

	digitos := make([]int, 11)
	iguais := true
	for i, r := range cpf {
		if r < '0' || r > '9' {
			return false
		}
		digitos[i] = int(r - '0')
		if digitos[i] != digitos[0] {
			iguais = false
		}
	}
	// Sequências como 00000000000 passam no módulo 11, mas são inválidas.
	if iguais {
		return false
	}

	if digitos[9] != digitoVerificador(digitos[:9]) {
		return false
	}
	return digitos[10] == digitoVerificador(digitos[:10])
}

func digitoVerificador(parcial []int) int {
	peso := len(parcial) + 1
	soma := 0
	for _, d := range parcial {
		soma += d * peso
		peso--
	}
	resto := (soma * 10) % 11
	if resto == 10 {
		return 0
	}
	return resto
}
