package types

// SignupRequest represents the request body for creating an account
type SignupRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	Token string `json:"token"`
}

// UpdateProfileRequest represents the request body for updating basic profile data
type UpdateProfileRequest struct {
	Name     *string  `json:"name"`
	Gender   *string  `json:"gender"`
	Age      *int     `json:"age"`
	HeightCM *int     `json:"height_cm"`
	WeightKG *float64 `json:"weight_kg"`
}

// UpdateFoodSettingRequest represents the request body for the food-setting page:
// activity, goal, preferences, allergies and per-meal eat level.
type UpdateFoodSettingRequest struct {
	ActivityLevel *string  `json:"activity_level"`
	DietGoal      *string  `json:"diet_goal"`
	PreferredFood *string  `json:"preferred_food"`
	Allergies     []string `json:"allergies"`
	EatLevel      *struct {
		Breakfast string `json:"breakfast"`
		Lunch     string `json:"lunch"`
		Dinner    string `json:"dinner"`
	} `json:"eat_level"`
}
