package wikipedia

// fallbackFilm 内置片单的单条记录
type fallbackFilm struct {
	title   string
	year    int
	rating  float64
	genres  string
	runtime int
}

// fallbackFilms 内置高分片单（真实公开数据，抽取链的最终兜底）
var fallbackFilms = []fallbackFilm{
	{"The Shawshank Redemption", 1994, 9.3, "Drama", 142},
	{"The Godfather", 1972, 9.2, "Crime|Drama", 175},
	{"The Dark Knight", 2008, 9.0, "Action|Crime|Drama", 152},
	{"Pulp Fiction", 1994, 8.9, "Crime|Drama", 154},
	{"Forrest Gump", 1994, 8.8, "Drama|Romance", 142},
	{"Inception", 2010, 8.8, "Action|Sci-Fi", 148},
	{"The Matrix", 1999, 8.7, "Action|Sci-Fi", 136},
	{"Goodfellas", 1990, 8.7, "Crime|Drama", 146},
	{"Interstellar", 2014, 8.6, "Adventure|Drama|Sci-Fi", 169},
	{"Fight Club", 1999, 8.8, "Drama", 139},
	{"Gladiator", 2000, 8.5, "Action|Adventure|Drama", 155},
	{"The Silence of the Lambs", 1991, 8.6, "Crime|Drama|Thriller", 118},
	{"Saving Private Ryan", 1998, 8.6, "Drama|War", 169},
	{"Jurassic Park", 1993, 8.2, "Action|Adventure|Sci-Fi", 127},
	{"The Avengers", 2012, 8.0, "Action|Adventure|Sci-Fi", 143},
	{"Avatar", 2009, 7.8, "Action|Adventure|Sci-Fi", 162},
	{"Titanic", 1997, 7.8, "Drama|Romance", 194},
	{"The Sixth Sense", 1999, 8.1, "Drama|Mystery|Thriller", 107},
	{"Parasite", 2019, 8.5, "Drama|Thriller", 132},
	{"Oppenheimer", 2023, 8.1, "Drama|History", 180},
	{"The Lion King", 1994, 8.5, "Animation|Adventure|Drama", 88},
	{"Back to the Future", 1985, 8.5, "Adventure|Comedy|Sci-Fi", 116},
	{"The Usual Suspects", 1995, 8.5, "Crime|Drama|Mystery", 106},
	{"Se7en", 1995, 8.6, "Crime|Drama|Mystery", 127},
	{"The Green Mile", 1999, 8.6, "Crime|Drama|Fantasy", 189},
	{"American Beauty", 1999, 8.3, "Drama", 122},
	{"Requiem for a Dream", 2000, 8.4, "Drama", 102},
	{"City of God", 2002, 8.8, "Crime|Drama", 130},
	{"The Prestige", 2006, 8.5, "Drama|Mystery|Sci-Fi", 130},
	{"The Departed", 2006, 8.5, "Crime|Drama|Thriller", 151},
	{"Whiplash", 2014, 8.5, "Drama|Music", 106},
	{"The Wolf of Wall Street", 2013, 8.2, "Biography|Comedy|Crime", 180},
	{"Toy Story", 1995, 8.3, "Animation|Adventure|Comedy", 81},
	{"Finding Nemo", 2003, 8.1, "Animation|Adventure|Comedy", 100},
	{"The Social Network", 2010, 7.7, "Biography|Drama", 120},
	{"Argo", 2012, 7.7, "Drama|History|Thriller", 120},
	{"Blue Valentine", 2010, 7.0, "Drama|Romance", 112},
	{"Casino", 1995, 8.2, "Crime|Drama", 178},
	{"Blood Diamond", 2006, 8.0, "Adventure|Drama|Thriller", 143},
	{"The Pursuit of Happyness", 2006, 8.0, "Biography|Drama", 117},
	{"Catch Me If You Can", 2002, 8.1, "Biography|Crime|Drama", 141},
	{"Schindler's List", 1993, 9.0, "Biography|Drama|History", 195},
	{"Apollo 13", 1995, 7.7, "Adventure|Drama|History", 140},
	{"The Fugitive", 1993, 7.8, "Action|Crime|Drama", 130},
	{"Unforgiven", 1992, 7.8, "Drama|Western", 131},
	{"True Grit", 2010, 7.6, "Drama|Western", 110},
	{"No Country for Old Men", 2007, 8.4, "Crime|Drama|Thriller", 122},
}
