package repository

import "TouristMap-App/internal/domain/model"

// indiaTouristSpots インド全体の観光スポット
var indiaTouristSpots = []model.TouristSpot{
	// 西部
	{ID: 1, Name: "Gateway of India", Coords: model.Coordinate{72.8347, 18.9220}, Region: model.RegionWest, Category: model.CategoryMonument, Description: "Historic arch monument in Mumbai", Rating: 4.5},
	{ID: 2, Name: "Hawa Mahal", Coords: model.Coordinate{75.8267, 26.9239}, Region: model.RegionWest, Category: model.CategoryPalace, Description: "Palace of Winds in Jaipur", Rating: 4.3},
	{ID: 3, Name: "Statue of Unity", Coords: model.Coordinate{73.7190, 21.8380}, Region: model.RegionWest, Category: model.CategoryMonument, Description: "World's tallest statue of Sardar Patel", Rating: 4.4},
	{ID: 4, Name: "Taj Mahal", Coords: model.Coordinate{78.0421, 27.1751}, Region: model.RegionWest, Category: model.CategoryMonument, Description: "Iconic white marble mausoleum", Rating: 4.8},
	{ID: 5, Name: "Red Fort", Coords: model.Coordinate{77.2410, 28.6562}, Region: model.RegionWest, Category: model.CategoryFort, Description: "Historic fort in Delhi", Rating: 4.2},
	{ID: 6, Name: "Amber Fort", Coords: model.Coordinate{75.8513, 26.9855}, Region: model.RegionWest, Category: model.CategoryFort, Description: "Magnificent fort in Jaipur", Rating: 4.6},
	{ID: 7, Name: "Udaipur City Palace", Coords: model.Coordinate{73.6800, 24.5760}, Region: model.RegionWest, Category: model.CategoryPalace, Description: "Royal palace complex in Udaipur", Rating: 4.5},
	{ID: 8, Name: "Jaisalmer Fort", Coords: model.Coordinate{70.9147, 26.9157}, Region: model.RegionWest, Category: model.CategoryFort, Description: "Golden fort in the Thar Desert", Rating: 4.4},
	{ID: 9, Name: "Ajanta Caves", Coords: model.Coordinate{75.7000, 20.5500}, Region: model.RegionWest, Category: model.CategoryCave, Description: "Ancient Buddhist cave monuments", Rating: 4.7},
	{ID: 10, Name: "Ellora Caves", Coords: model.Coordinate{75.1833, 20.0167}, Region: model.RegionWest, Category: model.CategoryCave, Description: "Rock-cut cave temples", Rating: 4.6},

	// 東部
	{ID: 11, Name: "Victoria Memorial", Coords: model.Coordinate{88.3426, 22.5448}, Region: model.RegionEast, Category: model.CategoryMemorial, Description: "Marble memorial in Kolkata", Rating: 4.3},
	{ID: 12, Name: "Darjeeling Tea Gardens", Coords: model.Coordinate{88.2636, 27.0360}, Region: model.RegionEast, Category: model.CategoryNature, Description: "Famous tea plantations", Rating: 4.5},
	{ID: 13, Name: "Sundarbans National Park", Coords: model.Coordinate{88.8833, 21.7333}, Region: model.RegionEast, Category: model.CategoryNature, Description: "Mangrove forest and tiger reserve", Rating: 4.4},
	{ID: 14, Name: "Konark Sun Temple", Coords: model.Coordinate{86.0944, 19.8876}, Region: model.RegionEast, Category: model.CategoryTemple, Description: "Ancient sun temple in Odisha", Rating: 4.6},
	{ID: 15, Name: "Bodh Gaya", Coords: model.Coordinate{84.9911, 24.6961}, Region: model.RegionEast, Category: model.CategoryTemple, Description: "Sacred Buddhist pilgrimage site", Rating: 4.7},
	{ID: 16, Name: "Kaziranga National Park", Coords: model.Coordinate{93.4167, 26.6667}, Region: model.RegionEast, Category: model.CategoryNature, Description: "Home to the one-horned rhinoceros", Rating: 4.8},
	{ID: 17, Name: "Mahabodhi Temple", Coords: model.Coordinate{84.9911, 24.6961}, Region: model.RegionEast, Category: model.CategoryTemple, Description: "UNESCO World Heritage Buddhist temple", Rating: 4.6},
	{ID: 18, Name: "Puri Jagannath Temple", Coords: model.Coordinate{85.8333, 19.8000}, Region: model.RegionEast, Category: model.CategoryTemple, Description: "Famous Hindu temple in Odisha", Rating: 4.5},
	{ID: 19, Name: "Gangtok", Coords: model.Coordinate{88.6122, 27.3314}, Region: model.RegionEast, Category: model.CategoryCity, Description: "Capital of Sikkim with mountain views", Rating: 4.3},
	{ID: 20, Name: "Shillong", Coords: model.Coordinate{91.8833, 25.5667}, Region: model.RegionEast, Category: model.CategoryCity, Description: "Scotland of the East", Rating: 4.2},

	// 北部
	{ID: 21, Name: "Golden Temple", Coords: model.Coordinate{74.8765, 31.6200}, Region: model.RegionNorth, Category: model.CategoryTemple, Description: "Sacred Sikh gurdwara in Amritsar", Rating: 4.8},
	{ID: 22, Name: "Leh Palace", Coords: model.Coordinate{77.5833, 34.1667}, Region: model.RegionNorth, Category: model.CategoryPalace, Description: "Historic palace in Ladakh", Rating: 4.4},
	{ID: 23, Name: "Dal Lake", Coords: model.Coordinate{74.8667, 34.1167}, Region: model.RegionNorth, Category: model.CategoryNature, Description: "Famous lake in Srinagar", Rating: 4.5},
	{ID: 24, Name: "Rishikesh", Coords: model.Coordinate{78.2667, 30.0833}, Region: model.RegionNorth, Category: model.CategoryCity, Description: "Yoga capital of the world", Rating: 4.3},
	{ID: 25, Name: "Manali", Coords: model.Coordinate{77.1833, 32.2500}, Region: model.RegionNorth, Category: model.CategoryCity, Description: "Hill station in Himachal Pradesh", Rating: 4.4},

	// 南部
	{ID: 26, Name: "Mysore Palace", Coords: model.Coordinate{76.6536, 12.3052}, Region: model.RegionSouth, Category: model.CategoryPalace, Description: "Royal palace in Karnataka", Rating: 4.6},
	{ID: 27, Name: "Hampi", Coords: model.Coordinate{76.4600, 15.3350}, Region: model.RegionSouth, Category: model.CategoryRuins, Description: "Ancient city ruins in Karnataka", Rating: 4.7},
	{ID: 28, Name: "Meenakshi Temple", Coords: model.Coordinate{78.1197, 9.9197}, Region: model.RegionSouth, Category: model.CategoryTemple, Description: "Famous temple in Madurai", Rating: 4.5},
	{ID: 29, Name: "Kerala Backwaters", Coords: model.Coordinate{76.2500, 9.5000}, Region: model.RegionSouth, Category: model.CategoryNature, Description: "Network of canals and lagoons", Rating: 4.6},
	{ID: 30, Name: "Goa Beaches", Coords: model.Coordinate{73.8278, 15.2993}, Region: model.RegionSouth, Category: model.CategoryBeach, Description: "Famous beaches and nightlife", Rating: 4.4},
}

// meghalayaTouristSpots メガラヤ州の観光スポット
var meghalayaTouristSpots = []model.TouristSpot{
	{ID: 31, Name: "Cherrapunji", Coords: model.Coordinate{91.7167, 25.3000}, Region: model.RegionMeghalaya, Category: model.CategoryNature, Description: "Wettest place on Earth with living root bridges", Rating: 4.6},
	{ID: 32, Name: "Mawsynram", Coords: model.Coordinate{91.5833, 25.3000}, Region: model.RegionMeghalaya, Category: model.CategoryNature, Description: "Village with highest annual rainfall", Rating: 4.4},
	{ID: 33, Name: "Dawki", Coords: model.Coordinate{92.0167, 25.1833}, Region: model.RegionMeghalaya, Category: model.CategoryNature, Description: "Crystal clear river and border town", Rating: 4.5},
	{ID: 34, Name: "Nongriat Living Root Bridge", Coords: model.Coordinate{91.7167, 25.2500}, Region: model.RegionMeghalaya, Category: model.CategoryNature, Description: "Natural bridge made from living tree roots", Rating: 4.7},
	{ID: 35, Name: "Elephant Falls", Coords: model.Coordinate{91.8833, 25.5500}, Region: model.RegionMeghalaya, Category: model.CategoryNature, Description: "Three-tiered waterfall near Shillong", Rating: 4.3},
	{ID: 36, Name: "Mawlynnong Village", Coords: model.Coordinate{91.9167, 25.2000}, Region: model.RegionMeghalaya, Category: model.CategoryVillage, Description: "Cleanest village in Asia", Rating: 4.5},
	{ID: 37, Name: "Krem Liat Prah Cave", Coords: model.Coordinate{91.8000, 25.4000}, Region: model.RegionMeghalaya, Category: model.CategoryCave, Description: "Longest cave system in India", Rating: 4.4},
	{ID: 38, Name: "Balpakram National Park", Coords: model.Coordinate{90.8333, 25.5000}, Region: model.RegionMeghalaya, Category: model.CategoryNature, Description: "National park with diverse wildlife", Rating: 4.2},
	{ID: 39, Name: "Nohkalikai Falls", Coords: model.Coordinate{91.7167, 25.2667}, Region: model.RegionMeghalaya, Category: model.CategoryNature, Description: "Tallest plunge waterfall in India", Rating: 4.6},
	{ID: 40, Name: "Umiam Lake", Coords: model.Coordinate{91.8000, 25.6667}, Region: model.RegionMeghalaya, Category: model.CategoryNature, Description: "Artificial lake with water sports", Rating: 4.1},
}

// manipurTouristSpots マニプル州の観光スポット
var manipurTouristSpots = []model.TouristSpot{
	{ID: 41, Name: "Loktak Lake", Coords: model.Coordinate{93.7833, 24.5500}, Region: model.RegionManipur, Category: model.CategoryNature, Description: "Largest freshwater lake in Northeast India with floating phumdis", Rating: 4.7},
	{ID: 42, Name: "Keibul Lamjao National Park", Coords: model.Coordinate{93.8167, 24.5000}, Region: model.RegionManipur, Category: model.CategoryNature, Description: "Only floating national park in the world", Rating: 4.6},
	{ID: 43, Name: "Kangla Fort", Coords: model.Coordinate{93.9428, 24.8075}, Region: model.RegionManipur, Category: model.CategoryFort, Description: "Ancient seat of Manipuri kings in Imphal", Rating: 4.4},
	{ID: 44, Name: "Shree Govindajee Temple", Coords: model.Coordinate{93.9456, 24.8136}, Region: model.RegionManipur, Category: model.CategoryTemple, Description: "Vaishnavite temple next to the royal palace", Rating: 4.5},
	{ID: 45, Name: "Imphal War Cemetery", Coords: model.Coordinate{93.9550, 24.8260}, Region: model.RegionManipur, Category: model.CategoryMemorial, Description: "Second World War cemetery", Rating: 4.3},
	{ID: 46, Name: "INA Memorial Moirang", Coords: model.Coordinate{93.7667, 24.5000}, Region: model.RegionManipur, Category: model.CategoryMemorial, Description: "Site where the INA flag was first hoisted on Indian soil", Rating: 4.2},
	{ID: 47, Name: "Andro Village", Coords: model.Coordinate{94.0500, 24.7600}, Region: model.RegionManipur, Category: model.CategoryVillage, Description: "Heritage village known for pottery", Rating: 4.1},
	{ID: 48, Name: "Dzukou Valley", Coords: model.Coordinate{94.1000, 25.5500}, Region: model.RegionManipur, Category: model.CategoryNature, Description: "Valley of seasonal flowers on the Manipur border", Rating: 4.8},
}

// DefaultTouristSpots 組み込みの全スポットの複製を返す
func DefaultTouristSpots() []*model.TouristSpot {
	all := make([]*model.TouristSpot, 0, len(indiaTouristSpots)+len(meghalayaTouristSpots)+len(manipurTouristSpots))
	for _, table := range [][]model.TouristSpot{indiaTouristSpots, meghalayaTouristSpots, manipurTouristSpots} {
		for i := range table {
			spot := table[i]
			all = append(all, &spot)
		}
	}
	return all
}
