package meals

import "venuebook/internal/shared/utils/response"

type MealList = response.Page[Meal]
