package main

import (
	"log"
	"net/http"
	"os"

	"nautika-backend/controllers"
	"nautika-backend/driver"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db := driver.ConnectDB()
	defer db.Close()

	userController := controllers.UserController{}
	volunteerController := controllers.VolunteerController{}
	eventController := controllers.NewEventController()
	issueController := controllers.NewIssueController()
	paymentController := controllers.NewPaymentController()
	fileController := controllers.NewFileController()

	router := mux.NewRouter()

	router.HandleFunc("/signup", userController.Signup(db)).Methods("POST")
	router.HandleFunc("/login", userController.Login(db)).Methods("POST")
	router.HandleFunc("/user/change-password", userController.ChangePassword(db)).Methods("PUT")
	router.HandleFunc("/user/{id}", userController.GetUser(db)).Methods("GET")
	router.HandleFunc("/user", userController.UpdateUser(db)).Methods("PUT")

	router.HandleFunc("/proses_payment", paymentController.ProcessPayment()).Methods("POST")

	router.HandleFunc("/volunteer", volunteerController.CreateVolunteer(db)).Methods("POST")
	router.HandleFunc("/volunteer", volunteerController.GetVolunteers(db)).Methods("GET")
	router.HandleFunc("/volunteer/{id}", volunteerController.GetVolunteer(db)).Methods("GET")

	router.HandleFunc("/event", eventController.CreateEvent(db)).Methods("POST")
	router.HandleFunc("/event", eventController.GetEvents(db)).Methods("GET")
	router.HandleFunc("/event/{id}", eventController.GetEvent(db)).Methods("GET")
	router.HandleFunc("/event/{id}", eventController.DeleteEvent(db)).Methods("DELETE")

	router.HandleFunc("/report_issue", issueController.ReportIssue(db)).Methods("POST")
	router.HandleFunc("/issue", issueController.GetIssues(db)).Methods("GET")
	router.HandleFunc("/issue/approval", issueController.UpdateApproval(db)).Methods("PATCH")
	router.HandleFunc("/issue/{id}", issueController.GetIssue(db)).Methods("GET")

	router.HandleFunc("/file", fileController.GetFile()).Methods("GET")
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(issueController.UploadDir))))

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Server is running"))
	}).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	handler := handlers.RecoveryHandler()(cors(handlers.LoggingHandler(os.Stdout, router)))

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	log.Println("Server started on port " + port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
