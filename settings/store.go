package settings

import (
	"errors"
	"sync"

	"storefront-service/models"
)

var ErrCertificationNotFound = errors.New("certification not found")

const defaultPassword = "nowicki2024"

// Store 内存中的公司资料存储，进程重启后回到初始数据。
// 与订单会话完全独立。
type Store struct {
	mu             sync.RWMutex
	company        models.CompanyProfile
	certifications []models.Certification
	social         models.SocialLinks
	password       string
}

// NewStore 用公司的初始资料填充存储
func NewStore() *Store {
	return &Store{
		company: models.CompanyProfile{
			Name:        "Nowicki Naturalnie",
			Address:     "ul. Gruszowa 5, 63-500 Potaśnia",
			Phone:       "+48 62 730 08 00",
			Email:       "kontakt@nowickinaturalnie.pl",
			Description: "Naturalne wędliny wytwarzane według tradycyjnych receptur, bez konserwantów i ulepszaczy. Smak, który pamięta się na zawsze.",
		},
		certifications: []models.Certification{
			{Name: "Sieć Dziedzictwa Kulinarnego Wielkopolski", Description: "Potwierdzenie zaangażowania w kultywowanie lokalnych tradycji kulinarnych."},
			{Name: "Certyfikowane produkty bezglutenowe", Description: "Spełnienie najwyższych standardów jakości i bezpieczeństwa dla osób z celiakią."},
			{Name: "Złotnicka Premium", Description: "Wyróżnienie za najlepszy wyrób z wieprzowiny złotnickiej."},
		},
		social: models.SocialLinks{
			FacebookURL:  "https://facebook.com/nowickinaturalnie",
			InstagramURL: "https://instagram.com/nowickinaturalnie",
		},
		password: defaultPassword,
	}
}

func (s *Store) Company() models.CompanyProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.company
}

func (s *Store) UpdateCompany(profile models.CompanyProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.company = profile
}

func (s *Store) Certifications() []models.Certification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Certification, len(s.certifications))
	copy(out, s.certifications)
	return out
}

func (s *Store) AddCertification(cert models.Certification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.certifications = append(s.certifications, cert)
}

func (s *Store) RemoveCertification(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.certifications) {
		return ErrCertificationNotFound
	}
	s.certifications = append(s.certifications[:index], s.certifications[index+1:]...)
	return nil
}

func (s *Store) Social() models.SocialLinks {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.social
}

func (s *Store) UpdateSocial(links models.SocialLinks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.social = links
}

// ChangePassword 校验并更新密码，返回字段错误映射，为空表示成功
func (s *Store) ChangePassword(change models.PasswordChange) map[string]string {
	fieldErrors := make(map[string]string)
	if change.CurrentPassword == "" {
		fieldErrors["current_password"] = "Wprowadź aktualne hasło"
	}
	if change.NewPassword != change.ConfirmPassword {
		fieldErrors["confirm_password"] = "Nowe hasło i potwierdzenie nie są identyczne"
	}
	if len(change.NewPassword) < 8 {
		fieldErrors["new_password"] = "Nowe hasło musi mieć co najmniej 8 znaków"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if change.CurrentPassword != s.password {
		return map[string]string{"current_password": "Aktualne hasło jest nieprawidłowe"}
	}
	s.password = change.NewPassword
	return nil
}
