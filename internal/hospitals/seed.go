package hospitals

// Seed returns the curated catalog of JCI-accredited facilities used to
// bootstrap an empty database and to serve as the refresh floor when live
// scraping yields nothing usable.
func Seed() []Hospital {
	return []Hospital{
		{
			ID:                "bumrungrad-bangkok",
			Name:              "Bumrungrad International Hospital",
			City:              "Bangkok",
			Country:           "Thailand",
			Location:          "Bangkok, Thailand",
			Description:       "Leading international hospital in Southeast Asia with over 30 specialty centers and JCI accreditation since 2002.",
			Specialties:       []string{"Cardiology", "Oncology", "Orthopedics", "Cosmetic Surgery", "Dental Care"},
			Procedures:        []string{"Heart Surgery", "Cancer Treatment", "Joint Replacement", "Rhinoplasty", "Dental Implants"},
			ImageURL:          "https://images.unsplash.com/photo-1538108149393-fbbd81895907?w=800",
			JCIAccredited:     true,
			AccreditationInfo: "JCI Accredited since 2002, ISO 9001:2015 certified",
			PriceRange:        PricePremium,
			EstimatedCostLow:  5000,
			EstimatedCostHigh: 50000,
			Rating:            4.9,
			ContactEmail:      "info@bumrungrad.com",
			WebsiteURL:        "https://www.bumrungrad.com",
			Verified:          true,
		},
		{
			ID:                "bangkok-hospital",
			Name:              "Bangkok Hospital",
			City:              "Bangkok",
			Country:           "Thailand",
			Location:          "Bangkok, Thailand",
			Description:       "Premier healthcare facility with international patient services and comprehensive medical specialties.",
			Specialties:       []string{"Cardiovascular", "Neurology", "Gastroenterology", "Plastic Surgery"},
			Procedures:        []string{"Bypass Surgery", "Brain Surgery", "Gastric Bypass", "Facelift"},
			ImageURL:          "https://images.unsplash.com/photo-1519494026892-80bbd2d6fd0d?w=800",
			JCIAccredited:     true,
			AccreditationInfo: "JCI Accredited, TEMOS certified",
			PriceRange:        PriceMidRange,
			EstimatedCostLow:  3000,
			EstimatedCostHigh: 35000,
			Rating:            4.7,
			ContactEmail:      "contact@bangkokhospital.com",
			WebsiteURL:        "https://www.bangkokhospital.com",
			Verified:          true,
		},
		{
			ID:                "apollo-chennai",
			Name:              "Apollo Hospitals",
			City:              "Chennai",
			Country:           "India",
			Location:          "Chennai, India",
			Description:       "India's first corporate hospital and pioneer in multi-specialty care with world-class facilities.",
			Specialties:       []string{"Cardiac Sciences", "Oncology", "Orthopedics", "Neurosciences", "Transplants"},
			Procedures:        []string{"Heart Transplant", "Cancer Surgery", "Knee Replacement", "Neurosurgery"},
			ImageURL:          "https://images.unsplash.com/photo-1516549655169-df83a0774514?w=800",
			JCIAccredited:     true,
			AccreditationInfo: "JCI Accredited, NABH certified",
			PriceRange:        PriceBudget,
			EstimatedCostLow:  2000,
			EstimatedCostHigh: 25000,
			Rating:            4.6,
			ContactEmail:      "info@apollohospitals.com",
			WebsiteURL:        "https://www.apollohospitals.com",
			Verified:          true,
		},
		{
			ID:                "fortis-gurugram",
			Name:              "Fortis Memorial Research Institute",
			City:              "Gurugram",
			Country:           "India",
			Location:          "Gurugram, India",
			Description:       "State-of-the-art multi-specialty healthcare facility with advanced technology and international standards.",
			Specialties:       []string{"Cardiology", "Oncology", "Neurosciences", "Orthopedics", "Gastroenterology"},
			Procedures:        []string{"Robotic Surgery", "Cardiac Catheterization", "Spine Surgery", "Liver Transplant"},
			ImageURL:          "https://images.unsplash.com/photo-1519494026892-80bbd2d6fd0d?w=800",
			JCIAccredited:     true,
			AccreditationInfo: "JCI Accredited, NABH certified",
			PriceRange:        PriceBudget,
			EstimatedCostLow:  2500,
			EstimatedCostHigh: 28000,
			Rating:            4.5,
			ContactEmail:      "contact@fortishealthcare.com",
			WebsiteURL:        "https://www.fortishealthcare.com",
			Verified:          true,
		},
		{
			ID:                "acibadem-maslak",
			Name:              "Acibadem Maslak Hospital",
			City:              "Istanbul",
			Country:           "Turkey",
			Location:          "Istanbul, Turkey",
			Description:       "Leading Turkish hospital with cutting-edge technology and international patient care.",
			Specialties:       []string{"Cardiology", "Oncology", "IVF", "Cosmetic Surgery", "Orthopedics"},
			Procedures:        []string{"Hair Transplant", "IVF Treatment", "Cosmetic Surgery", "Heart Surgery"},
			ImageURL:          "https://images.unsplash.com/photo-1666214280557-f1b5022eb634?w=800",
			JCIAccredited:     true,
			AccreditationInfo: "JCI Accredited, ISO certified",
			PriceRange:        PriceMidRange,
			EstimatedCostLow:  3500,
			EstimatedCostHigh: 30000,
			Rating:            4.8,
			ContactEmail:      "international@acibadem.com",
			WebsiteURL:        "https://www.acibadem.com",
			Verified:          true,
		},
		{
			ID:                "memorial-ankara",
			Name:              "Memorial Ankara Hospital",
			City:              "Ankara",
			Country:           "Turkey",
			Location:          "Ankara, Turkey",
			Description:       "Modern healthcare facility offering comprehensive medical services with international quality standards.",
			Specialties:       []string{"Cardiology", "Oncology", "Neurology", "Orthopedics"},
			Procedures:        []string{"Cancer Treatment", "Joint Replacement", "Heart Surgery"},
			ImageURL:          "https://images.unsplash.com/photo-1632833239869-a37e3a5806d2?w=800",
			JCIAccredited:     true,
			AccreditationInfo: "JCI Accredited",
			PriceRange:        PriceBudget,
			EstimatedCostLow:  2800,
			EstimatedCostHigh: 26000,
			Rating:            4.4,
			ContactEmail:      "info@memorial.com.tr",
			WebsiteURL:        "https://www.memorial.com.tr",
			Verified:          true,
		},
		{
			ID:                "angeles-tijuana",
			Name:              "Hospital Angeles Tijuana",
			City:              "Tijuana",
			Country:           "Mexico",
			Location:          "Tijuana, Mexico",
			Description:       "Premier Mexican hospital offering high-quality care close to the US border.",
			Specialties:       []string{"Bariatric Surgery", "Orthopedics", "Cardiology", "Cosmetic Surgery"},
			Procedures:        []string{"Gastric Sleeve", "Hip Replacement", "Tummy Tuck", "Bypass Surgery"},
			ImageURL:          "https://images.unsplash.com/photo-1587351021759-3e566b6af7cc?w=800",
			JCIAccredited:     true,
			AccreditationInfo: "JCI Accredited",
			PriceRange:        PriceBudget,
			EstimatedCostLow:  2500,
			EstimatedCostHigh: 22000,
			Rating:            4.5,
			ContactEmail:      "contact@angelestijuana.com",
			WebsiteURL:        "https://www.angelestijuana.com",
			Verified:          true,
		},
		{
			ID:                "medica-sur",
			Name:              "Medica Sur",
			City:              "Mexico City",
			Country:           "Mexico",
			Location:          "Mexico City, Mexico",
			Description:       "Leading private hospital in Mexico with comprehensive specialty services and advanced technology.",
			Specialties:       []string{"Oncology", "Cardiology", "Neurosurgery", "Orthopedics", "Transplants"},
			Procedures:        []string{"Cancer Surgery", "Heart Surgery", "Spine Surgery", "Organ Transplant"},
			ImageURL:          "https://images.unsplash.com/photo-1586773860418-d37222d8fce3?w=800",
			JCIAccredited:     true,
			AccreditationInfo: "JCI Accredited, first in Latin America",
			PriceRange:        PriceMidRange,
			EstimatedCostLow:  3200,
			EstimatedCostHigh: 32000,
			Rating:            4.6,
			ContactEmail:      "info@medicasur.org.mx",
			WebsiteURL:        "https://www.medicasur.org.mx",
			Verified:          true,
		},
	}
}
