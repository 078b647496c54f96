package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/realestatehub/backend/config"
	"github.com/realestatehub/backend/models"
	"github.com/realestatehub/backend/store"
	"github.com/realestatehub/backend/utils"
)

const (
	seedAdminEmail    = "admin@realestate.com"
	seedAdminPassword = "admin123"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with demo data",
		Long:  "Clears existing properties, ensures the sample admin account and inserts demo listings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context())
		},
	}
}

func runSeed(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := config.ConnectDB(cfg)
	if err != nil {
		return err
	}
	defer config.CloseDBConnection(client)

	db := client.Database(cfg.DBName)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	st := store.NewMongoStore(db)

	if err := st.Properties.DeleteAll(ctx); err != nil {
		return err
	}
	utils.Logger.Info("Existing properties cleared")

	admin, err := st.Users.FindByEmail(ctx, seedAdminEmail)
	if err == store.ErrNotFound {
		hashed, hashErr := utils.HashPassword(seedAdminPassword)
		if hashErr != nil {
			return hashErr
		}
		admin = &models.User{
			Name:      "Premium Admin",
			Email:     seedAdminEmail,
			Password:  hashed,
			Role:      models.RoleAdmin,
			CreatedAt: time.Now(),
		}
		if err := st.Users.Insert(ctx, admin); err != nil {
			return err
		}
		utils.Logger.Info("Created sample admin user")
	} else if err != nil {
		return err
	}

	for _, property := range sampleProperties(admin) {
		p := property
		if err := st.Properties.Insert(ctx, &p); err != nil {
			return err
		}
	}

	utils.Logger.Infof("Seeded %d properties", len(sampleProperties(admin)))
	return nil
}

func sampleProperties(admin *models.User) []models.Property {
	now := time.Now()
	return []models.Property{
		{
			Title:        "Luxurious Vista Villa",
			Description:  "Experience the pinnacle of luxury in this stunning villa featuring panoramic mountain views, a private infinity pool, and state-of-the-art smart home integration.",
			Price:        45000000,
			PropertyType: models.PropertyTypeVilla,
			Location: models.Location{
				Address: "123 Skyline Terrace",
				City:    "Mumbai",
				State:   "Maharashtra",
				Pincode: "400001",
			},
			Images:    []string{"https://images.unsplash.com/photo-1613490493576-7fde63acd811?auto=format&fit=crop&w=1200&q=80"},
			Owner:     admin.ID,
			Status:    models.PropertyStatusAvailable,
			CreatedAt: now,
		},
		{
			Title:        "Urban Chic Apartment",
			Description:  "A stylish and contemporary 3-bedroom apartment located in the heart of the city. Features floor-to-ceiling windows and a gourmet kitchen.",
			Price:        12500000,
			PropertyType: models.PropertyTypeApartment,
			Location: models.Location{
				Address: "45 Business District",
				City:    "Bangalore",
				State:   "Karnataka",
				Pincode: "560001",
			},
			Images:    []string{"https://images.unsplash.com/photo-1522708323590-d24dbb6b0237?auto=format&fit=crop&w=1200&q=80"},
			Owner:     admin.ID,
			Status:    models.PropertyStatusAvailable,
			CreatedAt: now,
		},
		{
			Title:        "Royal Heritage Mansion",
			Description:  "A beautifully restored heritage home that blends classic architecture with modern comforts. Set in a quiet neighborhood with a lush garden.",
			Price:        28000000,
			PropertyType: models.PropertyTypeHouse,
			Location: models.Location{
				Address: "88 Old Town Road",
				City:    "Pune",
				State:   "Maharashtra",
				Pincode: "411001",
			},
			Images:    []string{"https://images.unsplash.com/photo-1512917774080-9991f1c4c750?auto=format&fit=crop&w=1200&q=80"},
			Owner:     admin.ID,
			Status:    models.PropertyStatusAvailable,
			CreatedAt: now,
		},
		{
			Title:        "Emerald Valley Plot",
			Description:  "A premium residential plot in a peaceful valley setting. Ready for immediate construction with all utility connections in place.",
			Price:        5500000,
			PropertyType: models.PropertyTypePlot,
			Location: models.Location{
				Address: "7 Greenfield Lane",
				City:    "Nashik",
				State:   "Maharashtra",
				Pincode: "422001",
			},
			Owner:     admin.ID,
			Status:    models.PropertyStatusAvailable,
			CreatedAt: now,
		},
	}
}
