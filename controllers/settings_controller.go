package controllers

import (
	"net/http"
	"strconv"

	"storefront-service/models"
	"storefront-service/settings"

	"github.com/gin-gonic/gin"
)

var settingsStore *settings.Store

func SetSettingsStore(s *settings.Store) {
	settingsStore = s
}

func GetCompanyProfile(c *gin.Context) {
	c.JSON(http.StatusOK, settingsStore.Company())
}

func UpdateCompanyProfile(c *gin.Context) {
	var profile models.CompanyProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Wszystkie pola podstawowe (nazwa, adres, telefon, email) są wymagane"})
		return
	}

	settingsStore.UpdateCompany(profile)
	c.JSON(http.StatusOK, gin.H{"message": "Dane firmy zostały zaktualizowane pomyślnie"})
}

func ListCertifications(c *gin.Context) {
	c.JSON(http.StatusOK, settingsStore.Certifications())
}

func AddCertification(c *gin.Context) {
	var cert models.Certification
	if err := c.ShouldBindJSON(&cert); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Wprowadź nazwę certyfikatu"})
		return
	}

	settingsStore.AddCertification(cert)
	c.JSON(http.StatusCreated, gin.H{"message": "Certyfikat został dodany"})
}

func RemoveCertification(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid certification index"})
		return
	}

	if err := settingsStore.RemoveCertification(index); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Certification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Certyfikat został usunięty"})
}

func GetSocialLinks(c *gin.Context) {
	c.JSON(http.StatusOK, settingsStore.Social())
}

func UpdateSocialLinks(c *gin.Context) {
	var links models.SocialLinks
	if err := c.ShouldBindJSON(&links); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settingsStore.UpdateSocial(links)
	c.JSON(http.StatusOK, gin.H{"message": "Linki do mediów społecznościowych zostały zaktualizowane"})
}

func ChangePassword(c *gin.Context) {
	var change models.PasswordChange
	if err := c.ShouldBindJSON(&change); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if fieldErrors := settingsStore.ChangePassword(change); len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Hasło zostało zmienione pomyślnie"})
}
