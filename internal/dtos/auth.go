package dtos

type SignInDto struct {
	Email    string `json:"email"    schema:"email"`
	Password string `json:"password" schema:"password"`
}

func (dto *SignInDto) Validate() (bool, map[string]string) {
	errs := make(map[string]string)

	if dto.Email == "" {
		errs["email"] = "must be provided"
	}

	if dto.Password == "" {
		errs["password"] = "must be provided"
	}

	return len(errs) == 0, errs
}
